package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/auth/strategy"
	"github.com/taskforge/task-management-api/internal/core/domain"
)

type stubStrategy struct {
	principal *domain.Principal
	err       error
	calls     int
}

func (s *stubStrategy) Authenticate(c echo.Context) (*domain.Principal, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.principal, nil
}

func guardContext(method, path string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	return c
}

func runGuard(t *testing.T, rules RouteRules, def strategy.Strategy, c echo.Context) (bool, error) {
	t.Helper()
	called := false
	h := Guard(rules, def)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return called, h(c)
}

func TestGuard_PublicSkipsAuthentication(t *testing.T) {
	def := &stubStrategy{err: domain.ErrUnauthenticated}
	rules := RouteRules{"POST /auth/signup": {Public: true}}

	called, err := runGuard(t, rules, def, guardContext(http.MethodPost, "/auth/signup"))
	if err != nil {
		t.Fatalf("guard error: %v", err)
	}
	if !called {
		t.Fatalf("handler not reached on public route")
	}
	if def.calls != 0 {
		t.Fatalf("strategy invoked on public route")
	}
}

func TestGuard_PublicWinsOverRoles(t *testing.T) {
	// A rule carrying both Public and Roles must not authenticate: federation
	// entry points run before any credential exists.
	def := &stubStrategy{err: domain.ErrUnauthenticated}
	rules := RouteRules{"GET /auth/google/callback": {Public: true, Roles: []string{domain.RoleAdmin}}}

	called, err := runGuard(t, rules, def, guardContext(http.MethodGet, "/auth/google/callback"))
	if err != nil {
		t.Fatalf("guard error: %v", err)
	}
	if !called || def.calls != 0 {
		t.Fatalf("public route authenticated anyway")
	}
}

func TestGuard_UnlistedRouteRequiresAuth(t *testing.T) {
	def := &stubStrategy{err: domain.ErrUnauthenticated}

	called, err := runGuard(t, RouteRules{}, def, guardContext(http.MethodGet, "/tasks"))
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if called {
		t.Fatalf("handler reached despite failed authentication")
	}
	if def.calls != 1 {
		t.Fatalf("default strategy not invoked")
	}
}

func TestGuard_SetsPrincipal(t *testing.T) {
	def := &stubStrategy{principal: &domain.Principal{ID: 4, Name: "Eve", Role: domain.RoleUser}}

	c := guardContext(http.MethodGet, "/tasks")
	called, err := runGuard(t, RouteRules{}, def, c)
	if err != nil {
		t.Fatalf("guard error: %v", err)
	}
	if !called {
		t.Fatalf("handler not reached")
	}
	got, ok := c.Get(strategy.PrincipalContextKey).(*domain.Principal)
	if !ok || got.ID != 4 {
		t.Fatalf("principal not attached to context: %v", c.Get(strategy.PrincipalContextKey))
	}
}

func TestGuard_RouteStrategyOverridesDefault(t *testing.T) {
	def := &stubStrategy{err: domain.ErrUnauthenticated}
	local := &stubStrategy{principal: &domain.Principal{ID: 1, Role: domain.RoleUser}}
	rules := RouteRules{"POST /auth/signin": {Strategy: local}}

	called, err := runGuard(t, rules, def, guardContext(http.MethodPost, "/auth/signin"))
	if err != nil {
		t.Fatalf("guard error: %v", err)
	}
	if !called || local.calls != 1 || def.calls != 0 {
		t.Fatalf("route strategy not used: local=%d default=%d", local.calls, def.calls)
	}
}

func TestGuard_RoleEnforcement(t *testing.T) {
	rules := RouteRules{"DELETE /tasks/:id": {Roles: []string{domain.RoleAdmin}}}

	cases := []struct {
		role    string
		allowed bool
	}{
		{domain.RoleAdmin, true},
		{domain.RoleEditor, false},
		{domain.RoleUser, false},
	}
	for _, tc := range cases {
		def := &stubStrategy{principal: &domain.Principal{ID: 1, Role: tc.role}}
		called, err := runGuard(t, rules, def, guardContext(http.MethodDelete, "/tasks/:id"))
		if tc.allowed {
			if err != nil || !called {
				t.Fatalf("role %s: expected access, got err=%v called=%v", tc.role, err, called)
			}
			continue
		}
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", tc.role, err)
		}
		if called {
			t.Fatalf("role %s: handler reached despite forbidden role", tc.role)
		}
	}
}

func TestGuard_EmptyRolesAllowsAnyAuthenticated(t *testing.T) {
	def := &stubStrategy{principal: &domain.Principal{ID: 1, Role: domain.RoleUser}}

	called, err := runGuard(t, RouteRules{}, def, guardContext(http.MethodGet, "/tasks"))
	if err != nil || !called {
		t.Fatalf("authenticated USER rejected on unrestricted route: err=%v called=%v", err, called)
	}
}
