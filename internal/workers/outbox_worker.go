package workers

import (
	"context"
	"time"

	"bbs/internal/core/outbox"
	outboxPort "bbs/internal/ports/outbox"

	"go.uber.org/zap"
)

// MaxAttempts is how many failed publishes an event gets before it is marked failed.
const MaxAttempts = 5

// OutboxWorker relays pending outbox events to the publisher.
type OutboxWorker struct {
	OutboxRepo outboxPort.OutboxRepository
	Publisher  outboxPort.EventPublisher
	BatchSize  int
	Interval   time.Duration
	Logger     *zap.Logger
}

func NewOutboxWorker(
	outboxRepo outboxPort.OutboxRepository,
	publisher outboxPort.EventPublisher,
	batchSize int,
	interval time.Duration,
	logger *zap.Logger,
) *OutboxWorker {
	return &OutboxWorker{
		OutboxRepo: outboxRepo,
		Publisher:  publisher,
		BatchSize:  batchSize,
		Interval:   interval,
		Logger:     logger,
	}
}

// Run polls until ctx is cancelled. A fully published batch is followed immediately by
// the next poll; otherwise, including when any publish failed, the worker sleeps for
// Interval before retrying.
func (w *OutboxWorker) Run(ctx context.Context) {
	w.Logger.Info("OutboxWorker started", zap.Int("batchSize", w.BatchSize), zap.Duration("interval", w.Interval))
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("OutboxWorker stopped")
			return
		case <-timer.C:
			published, err := w.Drain(ctx)
			if err != nil {
				w.Logger.Error("Error fetching pending events", zap.Error(err))
			}
			if published == w.BatchSize && err == nil {
				timer.Reset(0)
			} else {
				timer.Reset(w.Interval)
			}
		}
	}
}

// Drain processes one batch and returns how many events were published.
func (w *OutboxWorker) Drain(ctx context.Context) (int, error) {
	pending, err := w.OutboxRepo.GetPending(ctx, w.BatchSize)
	if err != nil {
		return 0, err
	}
	published := 0
	for _, ev := range pending {
		if w.process(ctx, ev) {
			published++
		}
	}
	return published, nil
}

// process publishes ev and records the outcome. It reports whether the publish succeeded.
func (w *OutboxWorker) process(ctx context.Context, ev *outbox.Event) bool {
	if err := w.Publisher.Publish(ctx, ev); err != nil {
		failed := ev.Attempts+1 >= MaxAttempts
		w.Logger.Warn("Could not publish event",
			zap.String("eventID", ev.ID),
			zap.String("type", ev.Type),
			zap.Int("attempt", ev.Attempts+1),
			zap.Bool("givingUp", failed),
			zap.Error(err),
		)
		if err := w.OutboxRepo.MarkAttempt(ctx, ev.ID, failed); err != nil {
			w.Logger.Warn("Could not record publish attempt", zap.String("eventID", ev.ID), zap.Error(err))
		}
		return false
	}

	if err := w.OutboxRepo.MarkDone(ctx, ev.ID); err != nil {
		w.Logger.Warn("Could not mark event done", zap.String("eventID", ev.ID), zap.Error(err))
	}
	return true
}
