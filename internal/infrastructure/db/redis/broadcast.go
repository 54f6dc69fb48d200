package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taskforge/task-management/internal/core/domain"
)

// DefaultTopic is the shared channel every live subscriber listens on.
const DefaultTopic = "task-events"

// Broadcaster pushes human-readable change messages onto a single shared
// Redis pub/sub topic. Delivery is best-effort: there is no history and no
// acknowledgment, and late joiners miss past events.
type Broadcaster struct {
	client *redis.Client
	topic  string
}

// NewBroadcaster creates a Broadcaster publishing to topic, or to
// DefaultTopic when topic is empty.
func NewBroadcaster(client *redis.Client, topic string) *Broadcaster {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Broadcaster{client: client, topic: topic}
}

// Name identifies the sink in logs and metrics.
func (b *Broadcaster) Name() string { return "broadcast" }

// Deliver publishes the event's message to the shared topic.
func (b *Broadcaster) Deliver(ctx context.Context, event domain.ChangeEvent) error {
	if err := b.client.Publish(ctx, b.topic, event.Message()).Err(); err != nil {
		return fmt.Errorf("broadcast publish: %w", err)
	}
	return nil
}
