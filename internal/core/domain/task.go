package domain

import (
	"fmt"
	"time"
)

// TaskStatus represents the lifecycle state of a task. Assignment is an
// orthogonal attribute, not a state: an unassigned pending task and an
// assigned pending task are both Pending.
type TaskStatus string

const (
	StatusPending   TaskStatus = "Pending"
	StatusCompleted TaskStatus = "Completed"
)

// ParseTaskStatus converts a raw string into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case StatusPending, StatusCompleted:
		return TaskStatus(s), true
	}
	return "", false
}

const (
	titleMinLen       = 5
	titleMaxLen       = 100
	descriptionMinLen = 10
	descriptionMaxLen = 500
)

// Task is the core aggregate. AssignedBy is set if and only if
// AssignedUser is set.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	DueDate      time.Time  `json:"due_date"`
	Status       TaskStatus `json:"status"`
	AssignedUser string     `json:"assigned_user,omitempty"`
	AssignedBy   string     `json:"assigned_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewTask builds a pending, unassigned task after validating field bounds.
func NewTask(title, description string, dueDate time.Time) (*Task, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}
	if dueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", ErrValidation)
	}

	now := time.Now().UTC()
	return &Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ValidateTitle enforces the 5-100 character bound on task titles.
func ValidateTitle(title string) error {
	if n := len(title); n < titleMinLen || n > titleMaxLen {
		return fmt.Errorf("%w: title must be between %d and %d characters", ErrValidation, titleMinLen, titleMaxLen)
	}
	return nil
}

// ValidateDescription enforces the 10-500 character bound on descriptions.
func ValidateDescription(description string) error {
	if n := len(description); n < descriptionMinLen || n > descriptionMaxLen {
		return fmt.Errorf("%w: description must be between %d and %d characters", ErrValidation, descriptionMinLen, descriptionMaxLen)
	}
	return nil
}

// Assignable reports whether the task may still receive an assignee.
// Completed tasks are frozen for assignment, although Admin and Manager
// may still edit their fields (including back to Pending) through update.
func (t *Task) Assignable() bool {
	return t.Status != StatusCompleted
}
