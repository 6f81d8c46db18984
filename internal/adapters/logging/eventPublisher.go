package logging

import (
	"context"

	"bbs/internal/core/outbox"

	"go.uber.org/zap"
)

// EventPublisherLog writes events to the log. It stands in for Redis when no
// broker is configured.
type EventPublisherLog struct {
	Logger *zap.Logger
}

func NewEventPublisherLog(logger *zap.Logger) *EventPublisherLog {
	return &EventPublisherLog{Logger: logger}
}

func (p *EventPublisherLog) Publish(_ context.Context, event *outbox.Event) error {
	p.Logger.Info("Event",
		zap.String("type", event.Type),
		zap.String("eventID", event.ID),
		zap.String("aggregateID", event.AggregateID),
		zap.String("payload", event.Payload),
	)
	return nil
}
