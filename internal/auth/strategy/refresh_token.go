package strategy

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/auth"
	"github.com/taskforge/task-management-api/internal/auth/token"
	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

const refreshCookieName = "refresh_token"

// RefreshToken authenticates the refresh token from the request body (or
// cookie). Beyond signature and expiry it compares the presented token's
// digest against the one stored for the user: a cleared or rotated digest
// rejects the token even while its signature is still valid.
type RefreshToken struct {
	tokens *token.Issuer
	users  ports.UserRepository
}

func NewRefreshToken(tokens *token.Issuer, users ports.UserRepository) *RefreshToken {
	return &RefreshToken{tokens: tokens, users: users}
}

func (s *RefreshToken) Authenticate(c echo.Context) (*domain.Principal, error) {
	raw := extractRefreshToken(c)
	if raw == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := s.tokens.VerifyRefresh(raw)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, mapStoreErr(err)
	}
	if user.RefreshTokenHash == "" {
		return nil, domain.ErrUnauthenticated
	}
	if !auth.DigestEqual(auth.DigestToken(raw), user.RefreshTokenHash) {
		return nil, domain.ErrUnauthenticated
	}

	c.Set(RefreshTokenContextKey, raw)
	return &domain.Principal{ID: user.ID, Name: user.Name, Role: user.Role}, nil
}

func extractRefreshToken(c echo.Context) string {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.Bind(&req); err == nil && req.Refresh != "" {
		return req.Refresh
	}
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
