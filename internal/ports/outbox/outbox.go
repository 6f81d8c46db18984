package outbox

import (
	"context"

	"bbs/internal/core/outbox"
)

// OutboxRepository stores events until the relay worker has published them.
type OutboxRepository interface {
	Enqueue(ctx context.Context, event *outbox.Event) error
	GetPending(ctx context.Context, limit int) ([]*outbox.Event, error)
	MarkDone(ctx context.Context, id string) error
	MarkAttempt(ctx context.Context, id string, failed bool) error
}

// EventPublisher delivers an event to subscribers outside the process.
type EventPublisher interface {
	Publish(ctx context.Context, event *outbox.Event) error
}
