package ports

import (
	"context"

	"github.com/taskforge/task-management/internal/core/domain"
)

// EventPublisher hands a change event to the notification fan-out.
// Publish must never block the caller on sink delivery and must never
// surface sink failures.
type EventPublisher interface {
	Publish(event domain.ChangeEvent)
}

// Mailer is the outbound email transport. Calls may fail; failures are
// logged by callers and never abort the mutation that triggered them.
type Mailer interface {
	SendWelcome(ctx context.Context, to, username string) error
	SendTaskAssigned(ctx context.Context, to, username, title string) error
	SendTaskCompleted(ctx context.Context, to []string, username, title, taskID string) error
}
