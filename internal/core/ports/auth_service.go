package ports

import (
	"context"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// SignupInput carries the fields needed to register a local account.
type SignupInput struct {
	Email    string
	Name     string
	Password string
}

// TokenPair is the result of a successful signin, refresh, or federated
// login: both signed tokens plus the user summary returned to the caller.
type TokenPair struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService drives the session lifecycle. Login and Refresh persist the
// digest of the newly issued refresh token before returning it; a store
// failure there fails the whole call so the client never holds a token the
// server cannot later validate.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, principal domain.Principal) (*TokenPair, error)
	Refresh(ctx context.Context, principal domain.Principal, presentedToken string) (*TokenPair, error)
	SignOut(ctx context.Context, userID int64) error
}
