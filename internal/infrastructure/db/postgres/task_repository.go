package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

type taskModel struct {
	ID           int64  `gorm:"primaryKey"`
	Title        string `gorm:"not null;index"`
	Description  string
	Status       string `gorm:"not null"`
	Priority     string `gorm:"not null"`
	DueDate      *time.Time
	ProjectID    int64 `gorm:"not null;index"`
	CreatedByID  int64 `gorm:"not null"`
	AssignedToID *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (taskModel) TableName() string { return "tasks" }

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m := toTaskModel(task)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return toDomainTask(m), nil
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]domain.Task, error) {
	var models []taskModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return toDomainTasks(models), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	var m taskModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return toDomainTask(&m), nil
}

// Search matches the query case-insensitively against title and description.
func (r *TaskRepository) Search(ctx context.Context, query string) ([]domain.Task, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var models []taskModel
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	return toDomainTasks(models), nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m := toTaskModel(task)
	res := r.db.WithContext(ctx).Model(&taskModel{}).Where("id = ?", task.ID).
		Select("Title", "Description", "Status", "Priority", "DueDate", "AssignedToID").
		Updates(m)
	if res.Error != nil {
		return nil, fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return r.FindByID(ctx, task.ID)
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&taskModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func toTaskModel(t *domain.Task) *taskModel {
	return &taskModel{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		DueDate:      t.DueDate,
		ProjectID:    t.ProjectID,
		CreatedByID:  t.CreatedByID,
		AssignedToID: t.AssignedToID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toDomainTask(m *taskModel) *domain.Task {
	return &domain.Task{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Status:       domain.TaskStatus(m.Status),
		Priority:     domain.Priority(m.Priority),
		DueDate:      m.DueDate,
		ProjectID:    m.ProjectID,
		CreatedByID:  m.CreatedByID,
		AssignedToID: m.AssignedToID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toDomainTasks(models []taskModel) []domain.Task {
	tasks := make([]domain.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, *toDomainTask(&models[i]))
	}
	return tasks
}
