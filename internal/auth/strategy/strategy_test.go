package strategy

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// stubUserRepo is an in-memory UserRepository for strategy tests. Only the
// lookups the strategies exercise are implemented with behaviour; writes are
// recorded but otherwise inert.
type stubUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[int64]*domain.User

	findErr error
	created []*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[int64]*domain.User),
	}
	for _, u := range users {
		r.byEmail[u.Email] = u
		r.byID[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	u := *user
	u.ID = int64(len(r.byID) + 1)
	r.byEmail[u.Email] = &u
	r.byID[u.ID] = &u
	r.created = append(r.created, &u)
	return &u, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) SetRefreshHash(ctx context.Context, userID int64, hash string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RefreshTokenHash = hash
	return nil
}

func (r *stubUserRepo) RotateRefreshHash(ctx context.Context, userID int64, oldHash, newHash string) error {
	u, ok := r.byID[userID]
	if !ok || u.RefreshTokenHash != oldHash {
		return domain.ErrUnauthenticated
	}
	u.RefreshTokenHash = newHash
	return nil
}

func (r *stubUserRepo) ClearRefreshHash(ctx context.Context, userID int64) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RefreshTokenHash = ""
	return nil
}

// newJSONContext builds an echo context carrying a JSON body.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
