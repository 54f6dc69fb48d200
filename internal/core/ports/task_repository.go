package ports

import (
	"context"
	"time"

	"github.com/taskforge/task-management/internal/core/domain"
)

// TaskFilter carries the optional list filters. TitleSearch is a
// case-insensitive substring match; Status an exact match.
type TaskFilter struct {
	Status      string
	TitleSearch string
}

// TaskRepository defines persistence operations for tasks. The store
// provides per-document atomicity, which serializes concurrent mutations
// on a single task.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// UpdateAssignment sets assigned_user and assigned_by in one guarded
	// write: the update only matches when the task is not completed, so the
	// conflict check is atomic with the mutation. Returns ErrTaskCompleted
	// when the guard rejects the write and ErrTaskNotFound when the task
	// is gone.
	UpdateAssignment(ctx context.Context, taskID, userID, assignerID string) (*domain.Task, error)

	// Update applies the non-nil fields of patch and returns the updated task.
	Update(ctx context.Context, taskID string, patch TaskPatch) (*domain.Task, error)

	Delete(ctx context.Context, id string) error

	// List returns tasks matching filter, ordered by creation time. Each
	// call is a fresh query; no cursor state is held.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error)

	CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)
	// CountDueAfter counts tasks whose due date is strictly after t.
	CountDueAfter(ctx context.Context, t time.Time) (int64, error)
}

// TaskPatch carries the updatable task fields; nil means "leave unchanged".
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *domain.TaskStatus
}
