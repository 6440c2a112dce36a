package ports

import (
	"context"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// TaskRepository defines the persistence interface for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindAll(ctx context.Context) ([]domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	Search(ctx context.Context, query string) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

// ProjectRepository defines the persistence interface for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindAll(ctx context.Context) ([]domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
}
