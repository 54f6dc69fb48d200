package handler

import (
	"time"

	"github.com/taskforge/task-management/internal/core/domain"
)

type createTaskRequest struct {
	Title       string    `json:"title"       validate:"required,min=5,max=100"`
	Description string    `json:"description" validate:"required,min=10,max=500"`
	DueDate     time.Time `json:"due_date"    validate:"required"`
}

type assignTaskRequest struct {
	AssignedUser string `json:"assigned_user" validate:"required"`
}

// updateTaskRequest carries a partial update. Role User may only send
// status; the service enforces that, the schema only shapes the payload.
type updateTaskRequest struct {
	Title       *string    `json:"title,omitempty"       validate:"omitempty,min=5,max=100"`
	Description *string    `json:"description,omitempty" validate:"omitempty,min=10,max=500"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      *string    `json:"status,omitempty"      validate:"omitempty,oneof=Pending Completed"`
}

type taskResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DueDate      time.Time `json:"due_date"`
	Status       string    `json:"status"`
	AssignedUser string    `json:"assigned_user,omitempty"`
	AssignedBy   string    `json:"assigned_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		DueDate:      t.DueDate,
		Status:       string(t.Status),
		AssignedUser: t.AssignedUser,
		AssignedBy:   t.AssignedBy,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toTaskListResponse(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type taskListResponse struct {
	Status bool           `json:"status"`
	Data   []taskResponse `json:"data"`
}
