package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"bbs/internal/core/outbox"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Message is the JSON document published for every event.
type Message struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   int64           `json:"created_at"`
}

// EventPublisherRedis publishes outbox events on Redis Pub/Sub, one channel per
// event type: <prefix><type>.
type EventPublisherRedis struct {
	Client *redis.Client
	Prefix string
	Logger *zap.Logger
}

func NewEventPublisherRedis(client *redis.Client, prefix string, logger *zap.Logger) *EventPublisherRedis {
	return &EventPublisherRedis{Client: client, Prefix: prefix, Logger: logger}
}

func (p *EventPublisherRedis) Channel(eventType string) string {
	return p.Prefix + eventType
}

func (p *EventPublisherRedis) Publish(ctx context.Context, event *outbox.Event) error {
	b, err := json.Marshal(Message{
		ID:          event.ID,
		Type:        event.Type,
		AggregateID: event.AggregateID,
		Payload:     json.RawMessage(event.Payload),
		CreatedAt:   event.CreatedAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}

	channel := p.Channel(event.Type)
	receivers, err := p.Client.Publish(ctx, channel, b).Result()
	if err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	p.Logger.Debug("Published event", zap.String("channel", channel), zap.String("eventID", event.ID), zap.Int64("receivers", receivers))
	return nil
}
