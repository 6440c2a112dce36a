// Package middleware implements the per-request access-control pipeline and
// the per-IP rate limiter.
package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/api/metrics"
	"github.com/taskforge/task-management-api/internal/auth/strategy"
	"github.com/taskforge/task-management-api/internal/core/domain"
)

// RouteRule is the declarative metadata attached to a route at registration
// time. The zero value means: authenticate with the default strategy, any
// authenticated role allowed.
type RouteRule struct {
	// Public skips authentication and the role check entirely. Public wins
	// even when Roles is non-empty: federation entry points must be able to
	// run pre-authentication.
	Public bool
	// Strategy selects the verification procedure; nil uses the guard's
	// default (access token).
	Strategy strategy.Strategy
	// Roles restricts access to the listed role names. Empty means any
	// authenticated role.
	Roles []string
}

// RouteRules maps "METHOD /path" (echo's registered route pattern, e.g.
// "GET /tasks/:id") to its rule. Routes without an entry get the zero rule:
// authentication required.
type RouteRules map[string]RouteRule

// Guard returns the access-control middleware. For every request it looks up
// the route's rule, runs the designated strategy unless the route is public,
// attaches the principal to the context, and enforces the role set. Failures
// short-circuit before the handler: 401 for authentication, 403 for
// authorization.
func Guard(rules RouteRules, defaultStrategy strategy.Strategy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rule := rules[c.Request().Method+" "+c.Path()]
			if rule.Public {
				return next(c)
			}

			strat := rule.Strategy
			if strat == nil {
				strat = defaultStrategy
			}

			principal, err := strat.Authenticate(c)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) {
					metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials").Inc()
				} else if errors.Is(err, domain.ErrUnauthenticated) {
					metrics.AuthFailuresTotal.WithLabelValues("unauthenticated").Inc()
				}
				return err
			}
			c.Set(strategy.PrincipalContextKey, principal)

			if len(rule.Roles) > 0 && !roleAllowed(principal.Role, rule.Roles) {
				metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}

			return next(c)
		}
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
