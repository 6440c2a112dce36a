package strategy

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/infrastructure/oauth"
)

type stubProvider struct {
	identity *oauth.Identity
	err      error
}

func (p *stubProvider) Exchange(ctx context.Context, code string) (*oauth.Identity, error) {
	return p.identity, p.err
}

func TestGoogle_FirstLoginCreatesUser(t *testing.T) {
	repo := newStubUserRepo()
	provider := &stubProvider{identity: &oauth.Identity{Email: "new@example.com", Name: "New User"}}
	strat := NewGoogle(provider, repo, zerolog.Nop())

	c, _ := newJSONContext(http.MethodGet, "/auth/google/callback?code=abc&state=s", "")
	principal, err := strat.Authenticate(c)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if principal.Role != domain.DefaultRole {
		t.Fatalf("expected default role, got %q", principal.Role)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(repo.created))
	}
	if repo.created[0].PasswordHash != "" {
		t.Fatalf("federated user must have no password hash")
	}
}

func TestGoogle_ExistingUserReused(t *testing.T) {
	repo := newStubUserRepo(&domain.User{
		ID:    8,
		Email: "existing@example.com",
		Name:  "Existing",
		Role:  domain.RoleEditor,
	})
	provider := &stubProvider{identity: &oauth.Identity{Email: "existing@example.com", Name: "Renamed"}}
	strat := NewGoogle(provider, repo, zerolog.Nop())

	c, _ := newJSONContext(http.MethodGet, "/auth/google/callback?code=abc&state=s", "")
	principal, err := strat.Authenticate(c)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if principal.ID != 8 || principal.Role != domain.RoleEditor {
		t.Fatalf("expected existing user, got %+v", principal)
	}
	if len(repo.created) != 0 {
		t.Fatalf("existing federated login must not create a user")
	}
}

func TestGoogle_Rejections(t *testing.T) {
	repo := newStubUserRepo()
	strat := NewGoogle(&stubProvider{err: errors.New("provider said no")}, repo, zerolog.Nop())

	// Missing code.
	c, _ := newJSONContext(http.MethodGet, "/auth/google/callback", "")
	if _, err := strat.Authenticate(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("missing code: expected ErrUnauthenticated, got %v", err)
	}

	// Failed exchange collapses into the same rejection.
	c, _ = newJSONContext(http.MethodGet, "/auth/google/callback?code=bad", "")
	if _, err := strat.Authenticate(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("failed exchange: expected ErrUnauthenticated, got %v", err)
	}
}
