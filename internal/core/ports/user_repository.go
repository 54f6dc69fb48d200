package ports

import (
	"context"

	"github.com/taskforge/task-management/internal/core/domain"
)

// UserRepository defines persistence operations for the user directory.
type UserRepository interface {
	// Create inserts the user and returns the stored copy with its ID set.
	// Returns ErrUserExists on a username or email collision.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByLogin resolves a user by username or email (either may be empty).
	FindByLogin(ctx context.Context, username, email string) (*domain.User, error)
	// List returns all users, or only the reports of managerID when it is
	// non-empty.
	List(ctx context.Context, managerID string) ([]*domain.User, error)
}
