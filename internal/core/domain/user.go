package domain

import "time"

// Role determines which operations a user may perform.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleUser    Role = "User"
)

// ParseRole converts a raw string into a Role. ok is false for unknown
// values; callers must never default to a privileged role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleUser:
		return Role(s), true
	}
	return "", false
}

// Actor identifies the authenticated principal behind a request.
type Actor struct {
	ID       string
	Username string
	Role     Role
}

// User models an account in the directory. Manager holds the ID of the
// user's manager and is only meaningful for role=User; it must never be
// set for a Manager.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Manager      string    `json:"manager,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
