package strategy

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
	"github.com/taskforge/task-management-api/internal/infrastructure/oauth"
)

// IdentityProvider is the federation bridge capability the strategy needs:
// trading an authorization code for a verified identity.
type IdentityProvider interface {
	Exchange(ctx context.Context, code string) (*oauth.Identity, error)
}

// Google authenticates the provider's authorization-code callback. On first
// login the user is created with the default role and no password hash, keyed
// by the provider's verified email.
type Google struct {
	provider IdentityProvider
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewGoogle(provider IdentityProvider, users ports.UserRepository, log zerolog.Logger) *Google {
	return &Google{provider: provider, users: users, log: log}
}

func (s *Google) Authenticate(c echo.Context) (*domain.Principal, error) {
	code := c.QueryParam("code")
	if code == "" {
		return nil, domain.ErrUnauthenticated
	}

	identity, err := s.provider.Exchange(c.Request().Context(), code)
	if err != nil {
		s.log.Warn().Err(err).Msg("federated code exchange failed")
		return nil, domain.ErrUnauthenticated
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	user, err := s.findOrCreate(ctx, identity)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	return &domain.Principal{ID: user.ID, Name: user.Name, Role: user.Role}, nil
}

func (s *Google) findOrCreate(ctx context.Context, identity *oauth.Identity) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Email: identity.Email,
		Name:  identity.Name,
		Role:  domain.DefaultRole,
	})
	if err == nil {
		s.log.Info().Str("email", identity.Email).Msg("created federated user")
		return created, nil
	}
	// Two concurrent first logins can race on the unique email index; the
	// loser simply reads the row the winner inserted.
	if errors.Is(err, domain.ErrUserExists) {
		return s.users.FindByEmail(ctx, identity.Email)
	}
	return nil, err
}
