package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management/internal/core/domain"
	"github.com/taskforge/task-management/internal/core/ports"
)

// TaskService owns the task lifecycle. Every mutation passes the
// authorization policy first, then the repository, and on success emits at
// most one change event to the fan-out. Event delivery never blocks or
// fails the mutation.
type TaskService struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	events ports.EventPublisher
	logger zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, events ports.EventPublisher, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, events: events, logger: logger}
}

// Create builds a new pending, unassigned task.
func (s *TaskService) Create(ctx context.Context, actor domain.Actor, input ports.CreateTaskInput) (*domain.Task, error) {
	if err := domain.Authorize(actor, domain.ActionCreateTask); err != nil {
		return nil, err
	}

	task, err := domain.NewTask(input.Title, input.Description, input.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("actor", actor.Username).Msg("task created")
	return task, nil
}

// Assign sets the task's assignee and records who assigned it. The
// repository write is guarded on the task not being completed, so the
// conflict check cannot race with a concurrent completion.
func (s *TaskService) Assign(ctx context.Context, input ports.AssignTaskInput) (*domain.Task, error) {
	candidate, err := s.users.FindByID(ctx, input.UserID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, input.TaskID)
	if err != nil && !errors.Is(err, domain.ErrTaskNotFound) {
		return nil, err
	}

	if err := domain.AuthorizeAssign(input.Actor, candidate, task); err != nil {
		return nil, err
	}

	updated, err := s.tasks.UpdateAssignment(ctx, input.TaskID, input.UserID, input.Actor.ID)
	if err != nil {
		return nil, err
	}

	s.events.Publish(domain.ChangeEvent{
		Kind:     domain.EventAssigned,
		Task:     *updated,
		Actor:    input.Actor,
		Assignee: &domain.Recipient{Username: candidate.Username, Email: candidate.Email},
	})

	s.logger.Info().
		Str("task_id", updated.ID).
		Str("assignee", candidate.Username).
		Str("assigner", input.Actor.Username).
		Msg("task assigned")

	return updated, nil
}

// Update applies a partial edit. Role User may only change the status of
// their own task; Admin and Manager may change any field, including moving
// a completed task back to pending. A transition into Completed emits a
// status-changed event addressed to the assignee and the assigner.
func (s *TaskService) Update(ctx context.Context, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, input.TaskID)
	if err != nil && !errors.Is(err, domain.ErrTaskNotFound) {
		return nil, err
	}

	if err := domain.AuthorizeUpdate(input.Actor, task, input.Status != nil); err != nil {
		return nil, err
	}

	patch, err := buildPatch(input)
	if err != nil {
		return nil, err
	}

	updated, err := s.tasks.Update(ctx, input.TaskID, patch)
	if err != nil {
		return nil, err
	}

	if task.Status != domain.StatusCompleted && updated.Status == domain.StatusCompleted {
		s.events.Publish(s.completionEvent(ctx, input.Actor, updated))
	}

	s.logger.Info().Str("task_id", updated.ID).Str("actor", input.Actor.Username).Msg("task updated")
	return updated, nil
}

// buildPatch validates and converts the update input. The policy has
// already restricted role User to status-only edits, so any extra fields
// from such a caller are dropped rather than applied.
func buildPatch(input ports.UpdateTaskInput) (ports.TaskPatch, error) {
	var patch ports.TaskPatch

	if input.Status != nil {
		status, ok := domain.ParseTaskStatus(*input.Status)
		if !ok {
			return patch, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *input.Status)
		}
		patch.Status = &status
	}

	if input.Actor.Role == domain.RoleUser {
		return patch, nil
	}

	if input.Title != nil {
		if err := domain.ValidateTitle(*input.Title); err != nil {
			return patch, err
		}
		patch.Title = input.Title
	}
	if input.Description != nil {
		if err := domain.ValidateDescription(*input.Description); err != nil {
			return patch, err
		}
		patch.Description = input.Description
	}
	patch.DueDate = input.DueDate

	return patch, nil
}

// completionEvent resolves the recipients for a completion notification.
// Directory lookups that fail only shrink the recipient list; they never
// fail the mutation.
func (s *TaskService) completionEvent(ctx context.Context, actor domain.Actor, task *domain.Task) domain.ChangeEvent {
	event := domain.ChangeEvent{
		Kind:  domain.EventStatusChanged,
		Task:  *task,
		Actor: actor,
	}

	if task.AssignedUser != "" {
		if u, err := s.users.FindByID(ctx, task.AssignedUser); err == nil {
			event.Assignee = &domain.Recipient{Username: u.Username, Email: u.Email}
		} else {
			s.logger.Warn().Err(err).Str("user_id", task.AssignedUser).Msg("could not resolve assignee for notification")
		}
	}
	if task.AssignedBy != "" {
		if u, err := s.users.FindByID(ctx, task.AssignedBy); err == nil {
			event.Assigner = &domain.Recipient{Username: u.Username, Email: u.Email}
		} else {
			s.logger.Warn().Err(err).Str("user_id", task.AssignedBy).Msg("could not resolve assigner for notification")
		}
	}

	return event
}

// Delete removes the task.
func (s *TaskService) Delete(ctx context.Context, actor domain.Actor, taskID string) error {
	if err := domain.Authorize(actor, domain.ActionDeleteTask); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", taskID).Str("actor", actor.Username).Msg("task deleted")
	return nil
}

// List returns all tasks matching filter, ordered by creation time.
func (s *TaskService) List(ctx context.Context, actor domain.Actor, filter ports.TaskFilter) ([]*domain.Task, error) {
	if err := domain.Authorize(actor, domain.ActionListAllTasks); err != nil {
		return nil, err
	}
	if filter.Status != "" {
		if _, ok := domain.ParseTaskStatus(filter.Status); !ok {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, filter.Status)
		}
	}
	return s.tasks.List(ctx, filter)
}

// MyTasks returns the tasks assigned to the calling user.
func (s *TaskService) MyTasks(ctx context.Context, actor domain.Actor) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByAssignee(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: no tasks assigned to you", domain.ErrTaskNotFound)
	}
	return tasks, nil
}

// Analytics counts completed, pending, and overdue tasks. Overdue counts
// tasks whose due date is strictly after the query time; the definition is
// intentional and must not be "corrected" to the past.
func (s *TaskService) Analytics(ctx context.Context, actor domain.Actor) (*ports.Analytics, error) {
	if err := domain.Authorize(actor, domain.ActionAnalytics); err != nil {
		return nil, err
	}

	completed, err := s.tasks.CountByStatus(ctx, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}
	pending, err := s.tasks.CountByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	overdue, err := s.tasks.CountDueAfter(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &ports.Analytics{Completed: completed, Pending: pending, Overdue: overdue}, nil
}
