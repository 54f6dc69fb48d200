package ports

import (
	"context"
	"time"

	"github.com/taskforge/task-management/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
}

// AssignTaskInput identifies the task, the candidate assignee, and the actor.
type AssignTaskInput struct {
	TaskID string
	UserID string
	Actor  domain.Actor
}

// UpdateTaskInput carries a partial task update. Nil fields are untouched.
// Role User may only supply Status; anything else is rejected by the policy.
type UpdateTaskInput struct {
	TaskID      string
	Actor       domain.Actor
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *string
}

// Analytics summarizes the task population. Overdue counts tasks whose due
// date is strictly in the future at query time; the definition is
// deliberate and pinned by tests.
type Analytics struct {
	Completed int64 `json:"completed_tasks"`
	Pending   int64 `json:"pending_tasks"`
	Overdue   int64 `json:"overdue_tasks"`
}

// TaskService defines the task lifecycle use cases. Every mutation runs
// through the authorization policy before it reaches the repository, and
// every successful assignment or completion emits exactly one change event.
type TaskService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateTaskInput) (*domain.Task, error)
	Assign(ctx context.Context, input AssignTaskInput) (*domain.Task, error)
	Update(ctx context.Context, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, actor domain.Actor, taskID string) error
	List(ctx context.Context, actor domain.Actor, filter TaskFilter) ([]*domain.Task, error)
	MyTasks(ctx context.Context, actor domain.Actor) ([]*domain.Task, error)
	Analytics(ctx context.Context, actor domain.Actor) (*Analytics, error)
}
