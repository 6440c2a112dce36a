package domain

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password
	// at signin. Callers must not distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated covers every token failure mode: missing, malformed,
	// bad signature, expired, or rotated. Callers cannot tell which check
	// rejected the token.
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrForbidden = errors.New("access forbidden")

	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")

	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")

	// ErrStoreUnavailable signals a transient persistence failure. Safe for
	// the client to retry; never carries internal error text.
	ErrStoreUnavailable = errors.New("store unavailable")
)
