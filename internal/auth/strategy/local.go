package strategy

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/auth"
	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

// Local authenticates email+password credentials from the request body.
// Unknown email, federation-only account, and wrong password all return the
// same ErrInvalidCredentials so the response cannot be used to enumerate
// registered emails.
type Local struct {
	users ports.UserRepository
}

func NewLocal(users ports.UserRepository) *Local {
	return &Local{users: users}
}

func (s *Local) Authenticate(c echo.Context) (*domain.Principal, error) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, mapStoreErr(err)
	}
	if user.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.Principal{ID: user.ID, Name: user.Name, Role: user.Role}, nil
}
