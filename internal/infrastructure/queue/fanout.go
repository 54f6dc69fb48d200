// Package queue decouples change-event delivery from the request path.
// Each sink gets its own buffered channel and worker, so a slow or failing
// sink never blocks the mutation that produced the event, and never
// suppresses the other sink's attempt.
package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management/internal/api/metrics"
	"github.com/taskforge/task-management/internal/core/domain"
)

const (
	channelBuffer   = 256
	deliveryTimeout = 30 * time.Second
)

// Sink is a single notification delivery channel. Deliver is attempted
// exactly once per event; errors are terminal.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, event domain.ChangeEvent) error
}

type sinkQueue struct {
	sink Sink
	ch   chan domain.ChangeEvent
}

// Fanout dispatches each published event to every sink independently.
type Fanout struct {
	queues []sinkQueue
	log    zerolog.Logger
}

// NewFanout creates a Fanout over the given sinks.
func NewFanout(log zerolog.Logger, sinks ...Sink) *Fanout {
	f := &Fanout{log: log}
	for _, s := range sinks {
		f.queues = append(f.queues, sinkQueue{sink: s, ch: make(chan domain.ChangeEvent, channelBuffer)})
	}
	return f
}

// Start launches one worker per sink. Workers stop when ctx is cancelled;
// events still queued at that point are abandoned, which is acceptable for
// best-effort notifications.
func (f *Fanout) Start(ctx context.Context) {
	for _, q := range f.queues {
		go f.runWorker(ctx, q)
	}
}

// Publish hands the event to every sink queue without blocking. When a
// queue is full the event is dropped for that sink only, counted and
// logged; the caller never observes the drop.
func (f *Fanout) Publish(event domain.ChangeEvent) {
	for _, q := range f.queues {
		select {
		case q.ch <- event:
			metrics.NotificationQueueDepth.WithLabelValues(q.sink.Name()).Set(float64(len(q.ch)))
		default:
			metrics.NotificationsDroppedTotal.WithLabelValues(q.sink.Name()).Inc()
			f.log.Warn().
				Str("sink", q.sink.Name()).
				Str("kind", string(event.Kind)).
				Str("task_id", event.Task.ID).
				Msg("sink queue full, event dropped")
		}
	}
}

func (f *Fanout) runWorker(ctx context.Context, q sinkQueue) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-q.ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(q.sink.Name()).Set(float64(len(q.ch)))
			f.deliver(ctx, q.sink, event)
		}
	}
}

// deliver makes the single delivery attempt for one sink. Failures are
// logged and counted, never retried, never surfaced.
func (f *Fanout) deliver(ctx context.Context, sink Sink, event domain.ChangeEvent) {
	deliverCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	if err := sink.Deliver(deliverCtx, event); err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues(sink.Name()).Inc()
		f.log.Error().Err(err).
			Str("sink", sink.Name()).
			Str("kind", string(event.Kind)).
			Str("task_id", event.Task.ID).
			Msg("notification delivery failed")
		return
	}

	metrics.NotificationsSentTotal.WithLabelValues(sink.Name(), string(event.Kind)).Inc()
	f.log.Debug().
		Str("sink", sink.Name()).
		Str("kind", string(event.Kind)).
		Str("task_id", event.Task.ID).
		Msg("notification delivered")
}
