package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/taskforge/task-management-api/internal/core/domain"
)

func seedTask(t *testing.T, repo *TaskRepository, title, description string) *domain.Task {
	t.Helper()
	task, err := repo.Create(context.Background(), &domain.Task{
		Title:       title,
		Description: description,
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
		ProjectID:   1,
		CreatedByID: 1,
	})
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func TestTaskRepository_Search_CaseInsensitive(t *testing.T) {
	repo := NewTaskRepository(openTestDB(t))
	seedTask(t, repo, "Fix LOGIN bug", "")
	seedTask(t, repo, "Deploy", "restart the login service")
	seedTask(t, repo, "Write docs", "")

	found, err := repo.Search(context.Background(), "Login")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches across title and description, got %d", len(found))
	}
}

func TestTaskRepository_Update_PersistsSelectedFields(t *testing.T) {
	repo := NewTaskRepository(openTestDB(t))
	task := seedTask(t, repo, "Original", "desc")

	task.Status = domain.StatusCompleted
	task.Priority = domain.PriorityHigh
	updated, err := repo.Update(context.Background(), task)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.StatusCompleted || updated.Priority != domain.PriorityHigh {
		t.Fatalf("update not persisted: %+v", updated)
	}
	if updated.Title != "Original" {
		t.Fatalf("title changed unexpectedly: %q", updated.Title)
	}
}

func TestTaskRepository_UpdateMissing(t *testing.T) {
	repo := NewTaskRepository(openTestDB(t))

	_, err := repo.Update(context.Background(), &domain.Task{ID: 404, Title: "ghost"})
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepository_Delete(t *testing.T) {
	repo := NewTaskRepository(openTestDB(t))
	task := seedTask(t, repo, "gone", "")

	if err := repo.Delete(context.Background(), task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound after delete, got %v", err)
	}
	if err := repo.Delete(context.Background(), task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("double delete: expected ErrTaskNotFound, got %v", err)
	}
}
