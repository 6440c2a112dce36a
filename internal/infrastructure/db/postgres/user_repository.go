package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

type userModel struct {
	ID               int64  `gorm:"primaryKey"`
	Email            string `gorm:"uniqueIndex;not null"`
	Name             string `gorm:"not null"`
	PasswordHash     string
	Role             string `gorm:"not null"`
	RefreshTokenHash string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (userModel) TableName() string { return "users" }

// UserRepository persists users in the relational store. Refresh-hash updates
// rely on single-row UPDATE atomicity; rotation is additionally guarded by a
// compare-and-set on the previous hash.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := userModel{
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return toDomainUser(&m), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return toDomainUser(&m), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return toDomainUser(&m), nil
}

func (r *UserRepository) SetRefreshHash(ctx context.Context, userID int64, hash string) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("refresh_token_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("set refresh hash: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) RotateRefreshHash(ctx context.Context, userID int64, oldHash, newHash string) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ? AND refresh_token_hash = ?", userID, oldHash).
		Update("refresh_token_hash", newHash)
	if res.Error != nil {
		return fmt.Errorf("rotate refresh hash: %w", res.Error)
	}
	// Zero rows means the stored hash moved on under us: a concurrent refresh
	// or signout won the race, so this token is no longer valid.
	if res.RowsAffected == 0 {
		return domain.ErrUnauthenticated
	}
	return nil
}

func (r *UserRepository) ClearRefreshHash(ctx context.Context, userID int64) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("refresh_token_hash", "")
	if res.Error != nil {
		return fmt.Errorf("clear refresh hash: %w", res.Error)
	}
	return nil
}

func toDomainUser(m *userModel) *domain.User {
	return &domain.User{
		ID:               m.ID,
		Email:            m.Email,
		Name:             m.Name,
		PasswordHash:     m.PasswordHash,
		Role:             m.Role,
		RefreshTokenHash: m.RefreshTokenHash,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
