package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

// TaskService implements task CRUD and search on top of the repositories.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	logger   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	if _, err := s.projects.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	created, err := s.tasks.Create(ctx, &domain.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       status,
		Priority:     priority,
		DueDate:      input.DueDate,
		ProjectID:    input.ProjectID,
		CreatedByID:  input.CreatedByID,
		AssignedToID: input.AssignedToID,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Int64("task_id", created.ID).Int64("project_id", created.ProjectID).Msg("task created")
	return created, nil
}

func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.FindAll(ctx)
}

func (s *TaskService) Search(ctx context.Context, query string) ([]domain.Task, error) {
	if query == "" {
		return []domain.Task{}, nil
	}
	return s.tasks.Search(ctx, query)
}

func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *TaskService) Update(ctx context.Context, id int64, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.AssignedToID != nil {
		task.AssignedToID = input.AssignedToID
	}

	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		if !errors.Is(err, domain.ErrTaskNotFound) {
			s.logger.Error().Err(err).Int64("task_id", id).Msg("failed to update task")
		}
		return nil, err
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("task_id", id).Msg("task deleted")
	return nil
}
