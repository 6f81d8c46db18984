package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

const (
	PostCreated    = "post.created"
	CommentCreated = "comment.created"
	UserDeleted    = "user.deleted"
)

// Event is a domain event waiting to be relayed to subscribers.
type Event struct {
	Seq         uint64     `gorm:"primaryKey;autoIncrement"`
	ID          string     `gorm:"type:char(36);uniqueIndex;not null"`
	Type        string     `gorm:"size:64;not null"`
	AggregateID string     `gorm:"type:char(36);not null"`
	Payload     string     `gorm:"type:text;not null"`
	Status      string     `gorm:"size:20;index;not null"` // pending, done, failed
	Attempts    int        `gorm:"not null;default:0"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (Event) TableName() string { return "outbox_events" }

// NewEvent builds a pending event with payload encoded as JSON.
func NewEvent(typ, aggregateID string, payload any) (*Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", typ, err)
	}
	return &Event{
		ID:          uuid.Must(uuid.NewV4()).String(),
		Type:        typ,
		AggregateID: aggregateID,
		Payload:     string(b),
		Status:      StatusPending,
	}, nil
}

type enqueuer interface {
	Enqueue(ctx context.Context, event *Event) error
}

// Record builds and stores an event. It runs after the write it describes has
// committed, so failures are logged and not returned.
func Record(ctx context.Context, repo enqueuer, log *zap.Logger, typ, aggregateID string, payload any) {
	ev, err := NewEvent(typ, aggregateID, payload)
	if err == nil {
		err = repo.Enqueue(ctx, ev)
	}
	if err != nil {
		log.Warn("Could not add event to outbox", zap.String("type", typ), zap.String("aggregateID", aggregateID), zap.Error(err))
	}
}
