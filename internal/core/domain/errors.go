package domain

import "errors"

var (
	// ErrValidation covers malformed input: field bounds, missing required
	// fields, unknown enum values.
	ErrValidation = errors.New("validation failed")

	ErrTaskNotFound = errors.New("task not found")
	ErrUserNotFound = errors.New("user not found")

	// ErrForbidden signals a role or ownership rule violation.
	ErrForbidden = errors.New("access forbidden")

	// ErrTaskCompleted signals an action disallowed by the task's current
	// state, such as assigning a completed task.
	ErrTaskCompleted = errors.New("task already completed")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
