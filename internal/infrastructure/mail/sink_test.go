package mail

import (
	"context"
	"strings"
	"testing"

	"github.com/taskforge/task-management/internal/core/domain"
)

// recordingMailer captures outbound sends for assertion.
type recordingMailer struct {
	assignedTo  []string
	completedTo [][]string
}

func (m *recordingMailer) SendWelcome(context.Context, string, string) error { return nil }

func (m *recordingMailer) SendTaskAssigned(_ context.Context, to, _, _ string) error {
	m.assignedTo = append(m.assignedTo, to)
	return nil
}

func (m *recordingMailer) SendTaskCompleted(_ context.Context, to []string, _, _, _ string) error {
	m.completedTo = append(m.completedTo, to)
	return nil
}

func TestSink_AssignedEvent(t *testing.T) {
	mailer := &recordingMailer{}
	sink := NewSink(mailer)

	err := sink.Deliver(context.Background(), domain.ChangeEvent{
		Kind:     domain.EventAssigned,
		Task:     domain.Task{ID: "task_1", Title: "Quarterly report"},
		Assignee: &domain.Recipient{Username: "bob", Email: "bob@example.com"},
	})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if len(mailer.assignedTo) != 1 || mailer.assignedTo[0] != "bob@example.com" {
		t.Errorf("expected one assignment email to bob, got %v", mailer.assignedTo)
	}
}

func TestSink_AssignedEventWithoutRecipient(t *testing.T) {
	mailer := &recordingMailer{}
	sink := NewSink(mailer)

	err := sink.Deliver(context.Background(), domain.ChangeEvent{
		Kind: domain.EventAssigned,
		Task: domain.Task{ID: "task_1", Title: "Quarterly report"},
	})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if len(mailer.assignedTo) != 0 {
		t.Errorf("no recipient means no send, got %v", mailer.assignedTo)
	}
}

func TestSink_CompletedEvent(t *testing.T) {
	mailer := &recordingMailer{}
	sink := NewSink(mailer)

	err := sink.Deliver(context.Background(), domain.ChangeEvent{
		Kind:     domain.EventStatusChanged,
		Task:     domain.Task{ID: "task_1", Title: "Quarterly report", Status: domain.StatusCompleted},
		Assignee: &domain.Recipient{Username: "bob", Email: "bob@example.com"},
		Assigner: &domain.Recipient{Username: "maria", Email: "maria@example.com"},
	})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if len(mailer.completedTo) != 1 {
		t.Fatalf("expected one completion email, got %d", len(mailer.completedTo))
	}
	to := mailer.completedTo[0]
	if len(to) != 2 || to[0] != "bob@example.com" || to[1] != "maria@example.com" {
		t.Errorf("completion must go to assignee and assigner, got %v", to)
	}
}

func TestSink_StatusChangeBackToPendingIsSilent(t *testing.T) {
	mailer := &recordingMailer{}
	sink := NewSink(mailer)

	err := sink.Deliver(context.Background(), domain.ChangeEvent{
		Kind:     domain.EventStatusChanged,
		Task:     domain.Task{ID: "task_1", Title: "Quarterly report", Status: domain.StatusPending},
		Assignee: &domain.Recipient{Username: "bob", Email: "bob@example.com"},
	})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if len(mailer.completedTo) != 0 {
		t.Errorf("reopening must not email anyone, got %v", mailer.completedTo)
	}
}

func TestRenderTemplates(t *testing.T) {
	body, err := render(assignedTmpl, templateData{Name: "bob", Title: "Quarterly <report>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(body, "bob") {
		t.Error("assignment body must address the assignee")
	}
	if strings.Contains(body, "<report>") {
		t.Error("template data must be HTML-escaped")
	}

	body, err = render(completedTmpl, templateData{Name: "bob", Title: "Quarterly report", TaskID: "task_1"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(body, "task_1") {
		t.Error("completion body must include the task id")
	}

	if _, err := render(welcomeTmpl, templateData{Name: "alice"}); err != nil {
		t.Fatalf("render welcome: %v", err)
	}
}
