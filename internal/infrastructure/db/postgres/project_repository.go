package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

type projectModel struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	OwnerID     int64 `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (projectModel) TableName() string { return "projects" }

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	m := projectModel{
		Title:       project.Title,
		Description: project.Description,
		OwnerID:     project.OwnerID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return toDomainProject(&m), nil
}

func (r *ProjectRepository) FindAll(ctx context.Context) ([]domain.Project, error) {
	var models []projectModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	projects := make([]domain.Project, 0, len(models))
	for i := range models {
		projects = append(projects, *toDomainProject(&models[i]))
	}
	return projects, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	var m projectModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return toDomainProject(&m), nil
}

func toDomainProject(m *projectModel) *domain.Project {
	return &domain.Project{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
