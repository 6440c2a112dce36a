package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/auth"
	"github.com/taskforge/task-management-api/internal/auth/token"
	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

const storeTimeout = 3 * time.Second

// AuthService drives signup and the session lifecycle: issuing token pairs,
// rotating the stored refresh digest, and revoking sessions.
type AuthService struct {
	users  ports.UserRepository
	tokens *token.Issuer
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *token.Issuer, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Signup registers a local account with a hashed password and the default
// role. It issues no tokens; the caller signs in afterwards.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	created, err := s.users.Create(ctx, &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         domain.DefaultRole,
	})
	if err != nil {
		return nil, s.storeErr(err)
	}

	s.logger.Info().Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login issues a fresh token pair for an already-authenticated principal and
// persists the new refresh digest. The pair is only returned once the digest
// write is confirmed: a token the server did not durably record must never
// reach the client.
func (s *AuthService) Login(ctx context.Context, principal domain.Principal) (*ports.TokenPair, error) {
	pair, refreshDigest, err := s.issuePair(principal)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.users.SetRefreshHash(ctx, principal.ID, refreshDigest); err != nil {
		s.logger.Error().Err(err).Int64("user_id", principal.ID).Msg("failed to persist refresh digest")
		return nil, s.storeErr(err)
	}

	s.logger.Info().Int64("user_id", principal.ID).Msg("session started")
	return pair, nil
}

// Refresh rotates the session: a new pair is issued and the stored digest is
// swapped with a compare-and-set keyed on the presented token's digest, so
// the old refresh token is permanently invalid afterwards. Losing the CAS
// means another refresh or a signout got there first.
func (s *AuthService) Refresh(ctx context.Context, principal domain.Principal, presentedToken string) (*ports.TokenPair, error) {
	pair, newDigest, err := s.issuePair(principal)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	oldDigest := auth.DigestToken(presentedToken)
	if err := s.users.RotateRefreshHash(ctx, principal.ID, oldDigest, newDigest); err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("user_id", principal.ID).Msg("failed to rotate refresh digest")
		return nil, s.storeErr(err)
	}

	return pair, nil
}

// SignOut clears the stored refresh digest so any outstanding refresh token
// is rejected. Access tokens are not individually revocable; they die by
// expiry.
func (s *AuthService) SignOut(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.users.ClearRefreshHash(ctx, userID); err != nil {
		return s.storeErr(err)
	}

	s.logger.Info().Int64("user_id", userID).Msg("session revoked")
	return nil
}

func (s *AuthService) issuePair(principal domain.Principal) (*ports.TokenPair, string, error) {
	accessToken, err := s.tokens.IssueAccessToken(principal.ID, principal.Name, principal.Role)
	if err != nil {
		return nil, "", err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(principal.ID, principal.Name)
	if err != nil {
		return nil, "", err
	}
	return &ports.TokenPair{
		ID:           principal.ID,
		Name:         principal.Name,
		Role:         principal.Role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, auth.DigestToken(refreshToken), nil
}

func (s *AuthService) storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrStoreUnavailable
	}
	return err
}
