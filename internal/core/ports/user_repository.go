package ports

import (
	"context"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts and
// their refresh-token state.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// SetRefreshHash stores the digest of a freshly issued refresh token,
	// replacing whatever was there before (signin path).
	SetRefreshHash(ctx context.Context, userID int64, hash string) error

	// RotateRefreshHash replaces the stored digest only if it still equals
	// oldHash (compare-and-set). Returns ErrUnauthenticated when the stored
	// digest no longer matches, which covers a concurrent rotation or a
	// signout racing this refresh.
	RotateRefreshHash(ctx context.Context, userID int64, oldHash, newHash string) error

	// ClearRefreshHash drops the stored digest, invalidating the session.
	ClearRefreshHash(ctx context.Context, userID int64) error
}
