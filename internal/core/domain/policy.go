package domain

import "fmt"

// Action names a gated operation. Every task-store mutation and privileged
// read is checked against the policy below before it touches storage.
type Action string

const (
	ActionCreateTask   Action = "create_task"
	ActionDeleteTask   Action = "delete_task"
	ActionListAllTasks Action = "list_all_tasks"
	ActionAnalytics    Action = "analytics"
)

// Authorize evaluates the role policy for targetless actions. Unknown
// actions are denied: the gate fails closed.
func Authorize(actor Actor, action Action) error {
	switch action {
	case ActionCreateTask, ActionDeleteTask, ActionListAllTasks, ActionAnalytics:
		if actor.Role == RoleAdmin || actor.Role == RoleManager {
			return nil
		}
		return fmt.Errorf("%w: role %s may not %s", ErrForbidden, actor.Role, action)
	}
	return fmt.Errorf("%w: unknown action %s", ErrForbidden, action)
}

// AuthorizeAssign decides whether actor may assign task to candidate.
// Rules are evaluated in order; the first failure wins:
//
//  1. candidate must exist
//  2. task must exist
//  3. task must not be completed
//  4. Admin may assign to anyone; a Manager only to their own reports;
//     role User may never assign.
//
// Callers pass nil for a candidate or task that failed to resolve.
func AuthorizeAssign(actor Actor, candidate *User, task *Task) error {
	if candidate == nil {
		return fmt.Errorf("%w: no user found with the given id", ErrUserNotFound)
	}
	if task == nil {
		return fmt.Errorf("%w: no task found with the given id", ErrTaskNotFound)
	}
	if !task.Assignable() {
		return fmt.Errorf("%w: completed tasks cannot be assigned", ErrTaskCompleted)
	}

	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleManager:
		if candidate.Manager != actor.ID {
			return fmt.Errorf("%w: managers can only assign tasks to users within their own team", ErrForbidden)
		}
		return nil
	}
	return fmt.Errorf("%w: role %s may not assign tasks", ErrForbidden, actor.Role)
}

// AuthorizeUpdate decides whether actor may update task. Role User may only
// touch their own task, and only its status; a missing status is a client
// error, reported by the caller as validation. Admin and Manager may change
// any field, including moving a completed task back to pending.
func AuthorizeUpdate(actor Actor, task *Task, statusProvided bool) error {
	if task == nil {
		return fmt.Errorf("%w: no task found with the given id", ErrTaskNotFound)
	}

	switch actor.Role {
	case RoleAdmin, RoleManager:
		return nil
	case RoleUser:
		if task.AssignedUser != actor.ID {
			return fmt.Errorf("%w: task is not assigned to you", ErrForbidden)
		}
		if !statusProvided {
			return fmt.Errorf("%w: users can only change the task status", ErrValidation)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown role %s", ErrForbidden, actor.Role)
}
