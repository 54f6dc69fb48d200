package ports

import (
	"context"

	"github.com/taskforge/task-management/internal/core/domain"
)

// SignupInput carries the registration payload. Manager is the ID of the
// new user's manager and must be empty when Role is Manager.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Role     string
	Manager  string
}

// AuthService implements registration and login.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	// Login authenticates by username or email and returns a signed token.
	Login(ctx context.Context, username, email, password string) (string, *domain.User, error)
}
