package strategy

import (
	"errors"
	"net/http"
	"testing"

	"github.com/taskforge/task-management-api/internal/auth"
	"github.com/taskforge/task-management-api/internal/auth/token"
	"github.com/taskforge/task-management-api/internal/core/domain"
)

func refreshFixture(t *testing.T) (*token.Issuer, *stubUserRepo, string) {
	t.Helper()
	issuer := token.NewIssuer("access", "refresh", 0, 0)
	signed, err := issuer.IssueRefreshToken(5, "dave")
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}
	repo := newStubUserRepo(&domain.User{
		ID:               5,
		Email:            "dave@example.com",
		Name:             "Dave",
		Role:             domain.RoleUser,
		RefreshTokenHash: auth.DigestToken(signed),
	})
	return issuer, repo, signed
}

func TestRefreshToken_ValidFromBody(t *testing.T) {
	issuer, repo, signed := refreshFixture(t)

	c, _ := newJSONContext(http.MethodPost, "/auth/refresh", `{"refresh":"`+signed+`"}`)
	principal, err := NewRefreshToken(issuer, repo).Authenticate(c)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if principal.ID != 5 || principal.Role != domain.RoleUser {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if got, _ := c.Get(RefreshTokenContextKey).(string); got != signed {
		t.Fatalf("raw refresh token not attached to context")
	}
}

func TestRefreshToken_ValidFromCookie(t *testing.T) {
	issuer, repo, signed := refreshFixture(t)

	c, _ := newJSONContext(http.MethodPost, "/auth/refresh", "")
	c.Request().AddCookie(&http.Cookie{Name: refreshCookieName, Value: signed})

	principal, err := NewRefreshToken(issuer, repo).Authenticate(c)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if principal.ID != 5 {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestRefreshToken_RoleReadFromStore(t *testing.T) {
	// The refresh claim set carries no role; a role change must take effect
	// on the next rotation.
	issuer, repo, signed := refreshFixture(t)
	repo.byID[5].Role = domain.RoleAdmin

	c, _ := newJSONContext(http.MethodPost, "/auth/refresh", `{"refresh":"`+signed+`"}`)
	principal, err := NewRefreshToken(issuer, repo).Authenticate(c)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if principal.Role != domain.RoleAdmin {
		t.Fatalf("expected role from store, got %q", principal.Role)
	}
}

func TestRefreshToken_Rejections(t *testing.T) {
	issuer, repo, signed := refreshFixture(t)
	strat := NewRefreshToken(issuer, repo)

	otherIssuer := token.NewIssuer("other-access", "other-refresh", 0, 0)
	foreign, err := otherIssuer.IssueRefreshToken(5, "dave")
	if err != nil {
		t.Fatalf("issue foreign token: %v", err)
	}

	// A signed token for an unknown user.
	ghost, err := issuer.IssueRefreshToken(99, "ghost")
	if err != nil {
		t.Fatalf("issue ghost token: %v", err)
	}

	cases := []struct {
		name string
		body string
	}{
		{"missing token", `{}`},
		{"garbage token", `{"refresh":"not-a-jwt"}`},
		{"wrong secret", `{"refresh":"` + foreign + `"}`},
		{"unknown user", `{"refresh":"` + ghost + `"}`},
	}
	for _, tc := range cases {
		c, _ := newJSONContext(http.MethodPost, "/auth/refresh", tc.body)
		if _, err := strat.Authenticate(c); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", tc.name, err)
		}
	}

	// A rotated-away digest rejects the old token even though the signature
	// is still valid.
	repo.byID[5].RefreshTokenHash = auth.DigestToken("a newer token")
	c, _ := newJSONContext(http.MethodPost, "/auth/refresh", `{"refresh":"`+signed+`"}`)
	if _, err := strat.Authenticate(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("rotated digest: expected ErrUnauthenticated, got %v", err)
	}

	// A cleared digest (signout) rejects the token too.
	repo.byID[5].RefreshTokenHash = ""
	c, _ = newJSONContext(http.MethodPost, "/auth/refresh", `{"refresh":"`+signed+`"}`)
	if _, err := strat.Authenticate(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("cleared digest: expected ErrUnauthenticated, got %v", err)
	}
}
