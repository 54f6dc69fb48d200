package ports

import (
	"context"

	"github.com/taskforge/task-management/internal/core/domain"
)

// UserService serves the cached user directory views.
type UserService interface {
	// Detail returns a single user, read through the cache.
	Detail(ctx context.Context, userID string) (*domain.User, error)
	// List returns the directory view for actor: all users for an Admin,
	// only the manager's own reports for a Manager. Read through the cache.
	List(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
}
