package mail

import (
	"context"

	"github.com/taskforge/task-management/internal/core/domain"
	"github.com/taskforge/task-management/internal/core/ports"
)

// Sink adapts the Mailer to the fan-out: it selects recipients and the
// template by event kind. Assignment notifies the assignee only;
// completion notifies both the assignee and the assigner.
type Sink struct {
	mailer ports.Mailer
}

func NewSink(mailer ports.Mailer) *Sink {
	return &Sink{mailer: mailer}
}

func (s *Sink) Name() string { return "email" }

func (s *Sink) Deliver(ctx context.Context, event domain.ChangeEvent) error {
	switch event.Kind {
	case domain.EventAssigned:
		if event.Assignee == nil {
			return nil
		}
		return s.mailer.SendTaskAssigned(ctx, event.Assignee.Email, event.Assignee.Username, event.Task.Title)

	case domain.EventStatusChanged:
		if event.Task.Status != domain.StatusCompleted {
			return nil
		}
		var to []string
		name := ""
		if event.Assignee != nil {
			to = append(to, event.Assignee.Email)
			name = event.Assignee.Username
		}
		if event.Assigner != nil {
			to = append(to, event.Assigner.Email)
		}
		if len(to) == 0 {
			return nil
		}
		return s.mailer.SendTaskCompleted(ctx, to, name, event.Task.Title, event.Task.ID)
	}
	return nil
}
