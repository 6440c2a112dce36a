package ports

import (
	"context"
	"time"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

// CreateTaskInput carries the fields for creating a task. Zero-valued Status
// and Priority default to PENDING / MEDIUM.
type CreateTaskInput struct {
	Title        string
	Description  string
	Status       domain.TaskStatus
	Priority     domain.Priority
	DueDate      *time.Time
	ProjectID    int64
	CreatedByID  int64
	AssignedToID *int64
}

// UpdateTaskInput carries partial updates; nil fields are left unchanged.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *domain.TaskStatus
	Priority     *domain.Priority
	DueDate      *time.Time
	AssignedToID *int64
}

type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	Search(ctx context.Context, query string) ([]domain.Task, error)
	Get(ctx context.Context, id int64) (*domain.Task, error)
	Update(ctx context.Context, id int64, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

// CreateProjectInput carries the fields for creating a project.
type CreateProjectInput struct {
	Title       string
	Description string
	OwnerID     int64
}

type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
}
