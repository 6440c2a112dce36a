package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

// ProjectService implements project creation and lookup.
type ProjectService struct {
	projects ports.ProjectRepository
	logger   zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	created, err := s.projects.Create(ctx, &domain.Project{
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     input.OwnerID,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}
	s.logger.Info().Int64("project_id", created.ID).Msg("project created")
	return created, nil
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.FindAll(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}
