// Package strategy implements the pluggable per-route authentication
// procedures. Each variant verifies a different credential kind and produces
// the same output: a Principal attached to the request context by the guard.
package strategy

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// Context keys under which authentication results are stashed.
const (
	PrincipalContextKey = "principal"
	// RefreshTokenContextKey holds the raw refresh token the client presented,
	// needed later to compute the previous digest for rotation.
	RefreshTokenContextKey = "refresh_token"
)

// Strategy authenticates a request and returns the verified principal.
// Implementations fail with domain.ErrInvalidCredentials or
// domain.ErrUnauthenticated; any store breakage surfaces as
// domain.ErrStoreUnavailable.
type Strategy interface {
	Authenticate(c echo.Context) (*domain.Principal, error)
}

// storeTimeout bounds every repository call made during authentication so a
// slow store fails the request as transient instead of hanging it.
const storeTimeout = 3 * time.Second

func storeCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storeTimeout)
}

// mapStoreErr converts a store deadline into the transient taxonomy so the
// client sees a retryable 503 rather than a credential rejection.
func mapStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrStoreUnavailable
	}
	return err
}
