// Package mail implements the outbound email transport. Sends may fail;
// callers log and move on — a mail outage never fails the operation that
// triggered the message.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Config captures the SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends templated notification emails over SMTP.
type Mailer struct {
	client *gomail.Client
	from   string
}

// New builds a Mailer from cfg. The connection is established per send by
// the underlying client.
func New(cfg Config) (*Mailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("mail client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From}, nil
}

// SendWelcome sends the signup confirmation.
func (m *Mailer) SendWelcome(ctx context.Context, to, username string) error {
	body, err := render(welcomeTmpl, templateData{Name: username})
	if err != nil {
		return err
	}
	return m.send(ctx, []string{to}, "Signup Successfully", body)
}

// SendTaskAssigned notifies the assignee of a new assignment.
func (m *Mailer) SendTaskAssigned(ctx context.Context, to, username, title string) error {
	body, err := render(assignedTmpl, templateData{Name: username, Title: title})
	if err != nil {
		return err
	}
	return m.send(ctx, []string{to}, "New Task Assigned", body)
}

// SendTaskCompleted notifies the assignee and the assigner of a completion.
func (m *Mailer) SendTaskCompleted(ctx context.Context, to []string, username, title, taskID string) error {
	body, err := render(completedTmpl, templateData{Name: username, Title: title, TaskID: taskID})
	if err != nil {
		return err
	}
	return m.send(ctx, to, "Task Completion Notification", body)
}

func (m *Mailer) send(ctx context.Context, to []string, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail send: %w", err)
	}
	return nil
}
