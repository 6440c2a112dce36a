package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/auth/strategy"
	"github.com/taskforge/task-management-api/internal/core/domain"
)

// ctxPrincipal extracts the principal attached by the guard. Absence means
// the guard never ran for this route, which is a wiring bug surfaced as 401
// rather than a panic.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	principal, ok := c.Get(strategy.PrincipalContextKey).(*domain.Principal)
	if !ok || principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	return principal, nil
}

// ctxRefreshToken extracts the raw refresh token stashed by the refresh
// strategy, needed to compute the previous digest during rotation.
func ctxRefreshToken(c echo.Context) (string, error) {
	raw, ok := c.Get(strategy.RefreshTokenContextKey).(string)
	if !ok || raw == "" {
		return "", domain.ErrUnauthenticated
	}
	return raw, nil
}
