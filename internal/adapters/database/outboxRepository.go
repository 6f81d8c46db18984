package database

import (
	"context"
	"fmt"
	"time"

	"bbs/internal/core/outbox"

	"gorm.io/gorm"
)

type OutboxRepositoryDatabase struct {
	db *gorm.DB
}

func NewOutboxRepositoryDatabase(db *gorm.DB) *OutboxRepositoryDatabase {
	return &OutboxRepositoryDatabase{db: db}
}

func (repo *OutboxRepositoryDatabase) Enqueue(ctx context.Context, event *outbox.Event) error {
	if event.Status == "" {
		event.Status = outbox.StatusPending
	}
	if err := repo.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("enqueue %s: %w", event.Type, err)
	}
	return nil
}

// GetPending returns up to limit pending events, oldest first.
func (repo *OutboxRepositoryDatabase) GetPending(ctx context.Context, limit int) ([]*outbox.Event, error) {
	var events []*outbox.Event
	if err := repo.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("seq ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("pending events: %w", err)
	}
	return events, nil
}

func (repo *OutboxRepositoryDatabase) MarkDone(ctx context.Context, id string) error {
	return repo.update(ctx, id, map[string]any{
		"status":       outbox.StatusDone,
		"processed_at": time.Now(),
	})
}

// MarkAttempt counts a failed publish. When failed is set the event is retired.
func (repo *OutboxRepositoryDatabase) MarkAttempt(ctx context.Context, id string, failed bool) error {
	fields := map[string]any{"attempts": gorm.Expr("attempts + 1")}
	if failed {
		fields["status"] = outbox.StatusFailed
		fields["processed_at"] = time.Now()
	}
	return repo.update(ctx, id, fields)
}

func (repo *OutboxRepositoryDatabase) update(ctx context.Context, id string, fields map[string]any) error {
	if err := repo.db.WithContext(ctx).
		Model(&outbox.Event{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("update event %s: %w", id, err)
	}
	return nil
}
