package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// openTestDB runs the repositories against in-memory sqlite. TranslateError
// is enabled exactly as in production so constraint violations surface the
// same way.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, repo *UserRepository, email string) *domain.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &domain.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Role:         domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	created := seedUser(t, repo, "alice@example.com")

	byEmail, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("id mismatch: %d vs %d", byEmail.ID, created.ID)
	}

	byID, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Fatalf("email mismatch: %q", byID.Email)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	seedUser(t, repo, "dup@example.com")

	_, err := repo.Create(context.Background(), &domain.User{
		Email: "dup@example.com",
		Name:  "Other",
		Role:  domain.RoleUser,
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserRepository_FindMissing(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	if _, err := repo.FindByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), 404); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_SetRefreshHash(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	user := seedUser(t, repo, "alice@example.com")

	if err := repo.SetRefreshHash(context.Background(), user.ID, "digest-1"); err != nil {
		t.Fatalf("set refresh hash: %v", err)
	}
	got, err := repo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.RefreshTokenHash != "digest-1" {
		t.Fatalf("hash not stored: %q", got.RefreshTokenHash)
	}

	if err := repo.SetRefreshHash(context.Background(), 404, "digest-1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for missing user, got %v", err)
	}
}

func TestUserRepository_RotateRefreshHash_CompareAndSet(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	user := seedUser(t, repo, "alice@example.com")

	if err := repo.SetRefreshHash(context.Background(), user.ID, "digest-1"); err != nil {
		t.Fatalf("set refresh hash: %v", err)
	}

	// Matching old hash rotates.
	if err := repo.RotateRefreshHash(context.Background(), user.ID, "digest-1", "digest-2"); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	got, err := repo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.RefreshTokenHash != "digest-2" {
		t.Fatalf("hash not rotated: %q", got.RefreshTokenHash)
	}

	// Replaying the previous hash loses the compare-and-set.
	if err := repo.RotateRefreshHash(context.Background(), user.ID, "digest-1", "digest-3"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("stale rotate: expected ErrUnauthenticated, got %v", err)
	}
	got, err = repo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.RefreshTokenHash != "digest-2" {
		t.Fatalf("stale rotate modified the stored hash: %q", got.RefreshTokenHash)
	}
}

func TestUserRepository_ClearRefreshHash(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	user := seedUser(t, repo, "alice@example.com")

	if err := repo.SetRefreshHash(context.Background(), user.ID, "digest-1"); err != nil {
		t.Fatalf("set refresh hash: %v", err)
	}
	if err := repo.ClearRefreshHash(context.Background(), user.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, err := repo.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.RefreshTokenHash != "" {
		t.Fatalf("hash not cleared: %q", got.RefreshTokenHash)
	}

	// Rotation against a cleared hash must fail: this is the signout
	// invalidation path.
	if err := repo.RotateRefreshHash(context.Background(), user.ID, "digest-1", "digest-2"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("rotate after clear: expected ErrUnauthenticated, got %v", err)
	}
}
