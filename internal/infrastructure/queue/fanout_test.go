package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// chanSink reports every delivered event on a channel so tests can wait
// without sleeping. When fail is set, Deliver still consumes the event but
// returns an error.
type chanSink struct {
	name      string
	delivered chan domain.ChangeEvent
	fail      bool
}

func newChanSink(name string, fail bool) *chanSink {
	return &chanSink{name: name, delivered: make(chan domain.ChangeEvent, 16), fail: fail}
}

func (s *chanSink) Name() string { return s.name }

func (s *chanSink) Deliver(_ context.Context, event domain.ChangeEvent) error {
	s.delivered <- event
	if s.fail {
		return errors.New("delivery refused")
	}
	return nil
}

func waitForEvent(t *testing.T, s *chanSink) domain.ChangeEvent {
	t.Helper()
	select {
	case event := <-s.delivered:
		return event
	case <-time.After(2 * time.Second):
		t.Fatalf("sink %s never received the event", s.name)
		return domain.ChangeEvent{}
	}
}

func sampleEvent() domain.ChangeEvent {
	return domain.ChangeEvent{
		Kind:  domain.EventAssigned,
		Task:  domain.Task{ID: "task_1", Title: "Quarterly report", Status: domain.StatusPending},
		Actor: domain.Actor{ID: "user_mgr", Username: "maria", Role: domain.RoleManager},
	}
}

func TestFanout_DeliversToEverySink(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broadcast := newChanSink("broadcast", false)
	email := newChanSink("email", false)
	f := NewFanout(discardLogger, broadcast, email)
	f.Start(ctx)

	f.Publish(sampleEvent())

	if got := waitForEvent(t, broadcast); got.Task.ID != "task_1" {
		t.Errorf("broadcast got wrong event: %+v", got)
	}
	if got := waitForEvent(t, email); got.Task.ID != "task_1" {
		t.Errorf("email got wrong event: %+v", got)
	}
}

func TestFanout_FailingSinkDoesNotSuppressOthers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	failing := newChanSink("broadcast", true)
	healthy := newChanSink("email", false)
	f := NewFanout(discardLogger, failing, healthy)
	f.Start(ctx)

	f.Publish(sampleEvent())
	f.Publish(sampleEvent())

	waitForEvent(t, failing)
	waitForEvent(t, healthy)
	// The second event still reaches both sinks after the first failure.
	waitForEvent(t, failing)
	waitForEvent(t, healthy)
}

func TestFanout_PublishNeverBlocks(t *testing.T) {
	// No workers running, so the queue fills up and overflow is dropped.
	f := NewFanout(discardLogger, newChanSink("email", false))

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			f.Publish(sampleEvent())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
}
