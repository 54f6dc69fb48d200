package domain

import "fmt"

// EventKind labels a change event.
type EventKind string

const (
	EventAssigned      EventKind = "assigned"
	EventStatusChanged EventKind = "status_changed"
)

// Recipient carries the addressing data a notification sink needs. The
// event resolves recipients at emission time so sinks never have to query
// the user directory.
type Recipient struct {
	Username string
	Email    string
}

// ChangeEvent is emitted once per successful task mutation and consumed
// independently by each notification sink. It is ephemeral: never
// persisted, delivered at most once per sink.
type ChangeEvent struct {
	Kind     EventKind
	Task     Task
	Actor    Actor
	Assignee *Recipient
	Assigner *Recipient
}

// Message renders the human-readable line pushed to broadcast subscribers.
func (e ChangeEvent) Message() string {
	switch e.Kind {
	case EventAssigned:
		assignee := ""
		if e.Assignee != nil {
			assignee = e.Assignee.Username
		}
		return fmt.Sprintf("task %q assigned to %s by %s (%s)", e.Task.Title, assignee, e.Actor.Username, e.Actor.Role)
	case EventStatusChanged:
		return fmt.Sprintf("task %q marked %s by %s (%s)", e.Task.Title, e.Task.Status, e.Actor.Username, e.Actor.Role)
	}
	return fmt.Sprintf("task %q changed", e.Task.Title)
}
