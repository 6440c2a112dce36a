package strategy

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/auth/token"
	"github.com/taskforge/task-management-api/internal/core/domain"
)

func newAccessContext(header string) echo.Context {
	c, _ := newJSONContext(http.MethodGet, "/tasks", "")
	if header != "" {
		c.Request().Header.Set(echo.HeaderAuthorization, header)
	}
	return c
}

func TestAccessToken_ValidBearer(t *testing.T) {
	issuer := token.NewIssuer("access", "refresh", 0, 0)
	signed, err := issuer.IssueAccessToken(9, "carol", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	principal, err := NewAccessToken(issuer).Authenticate(newAccessContext("Bearer " + signed))
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if principal.ID != 9 || principal.Name != "carol" || principal.Role != domain.RoleAdmin {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestAccessToken_CaseInsensitiveScheme(t *testing.T) {
	issuer := token.NewIssuer("access", "refresh", 0, 0)
	signed, err := issuer.IssueAccessToken(9, "carol", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := NewAccessToken(issuer).Authenticate(newAccessContext("bearer " + signed)); err != nil {
		t.Fatalf("lowercase scheme rejected: %v", err)
	}
}

func TestAccessToken_Rejections(t *testing.T) {
	issuer := token.NewIssuer("access", "refresh", 0, 0)
	strat := NewAccessToken(issuer)

	refresh, err := issuer.IssueRefreshToken(9, "carol")
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"no token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"refresh token in access slot", "Bearer " + refresh},
	}
	for _, tc := range cases {
		_, err := strat.Authenticate(newAccessContext(tc.header))
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", tc.name, err)
		}
	}
}
