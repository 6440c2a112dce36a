package handler

import "time"

type createTaskRequest struct {
	Title        string     `json:"title"          validate:"required"`
	Description  string     `json:"description"`
	Status       string     `json:"status"         validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority     string     `json:"priority"       validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate      *time.Time `json:"due_date"`
	ProjectID    int64      `json:"project_id"     validate:"required"`
	AssignedToID *int64     `json:"assigned_to_id"`
}

type updateTaskRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"   validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority     *string    `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate      *time.Time `json:"due_date"`
	AssignedToID *int64     `json:"assigned_to_id"`
}

type taskResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	ProjectID    int64      `json:"project_id"`
	CreatedByID  int64      `json:"created_by_id"`
	AssignedToID *int64     `json:"assigned_to_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type createProjectRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type projectResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
