package domain

import "time"

const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
	RoleUser   = "USER"
)

// DefaultRole is assigned to self-registered and federated accounts.
const DefaultRole = RoleUser

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleUser:
		return true
	}
	return false
}

// User models an account in the system. PasswordHash is empty for
// federation-only accounts; RefreshTokenHash is empty when the user has no
// active session.
type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	RefreshTokenHash string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Principal is the authenticated identity attached to a request after a
// strategy succeeds.
type Principal struct {
	ID   int64
	Name string
	Role string
}
