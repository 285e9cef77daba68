package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultRelayBatchSize bounds the outbox rows moved per tick.
const DefaultRelayBatchSize = 100

// OrderEventsRelayJob moves order events from the outbox table to the change feed.
// Runs every second; rows stay unpublished until the publisher accepts them, so a
// broker outage delays events but never drops them.
type OrderEventsRelayJob struct {
	outbox    ports.OutboxRepository
	publisher ports.OrderEventPublisher
	batchSize int
	now       func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger

	// guards against a slow tick overlapping the next one
	mu sync.Mutex
}

// NewOrderEventsRelayJob creates the relay job.
func NewOrderEventsRelayJob(
	outbox ports.OutboxRepository,
	publisher ports.OrderEventPublisher,
	batchSize int,
	logger *slog.Logger,
) *OrderEventsRelayJob {
	if batchSize <= 0 {
		batchSize = DefaultRelayBatchSize
	}
	return &OrderEventsRelayJob{
		outbox:    outbox,
		publisher: publisher,
		batchSize: batchSize,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "order_events_relay_job"),
	}
}

// Start begins relaying events every second.
func (j *OrderEventsRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if !j.mu.TryLock() {
			return
		}
		defer j.mu.Unlock()

		published, err := j.RunOnce(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order events relay failed", "published", published, "error", err)
			return
		}
		if published > 0 {
			j.logger.DebugContext(ctx, "Order events relayed", "published", published)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order events relay job started (running every second)")
	return nil
}

// Stop stops the relay job and waits for a running tick to finish.
func (j *OrderEventsRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order events relay job stopped")
}

// RunOnce publishes one batch in order and marks what was published. The first
// publish failure ends the batch; the messages before it are still marked.
func (j *OrderEventsRelayJob) RunOnce(ctx context.Context) (int, error) {
	messages, err := j.outbox.ListUnpublished(ctx, j.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to read outbox: %w", err)
	}

	published := make([]kernel.UUID, 0, len(messages))
	var publishErr error
	for _, msg := range messages {
		if err := j.publisher.Publish(ctx, msg); err != nil {
			publishErr = err
			break
		}
		published = append(published, msg.ID)
	}

	if len(published) > 0 {
		if err := j.outbox.MarkPublished(ctx, j.now().UTC(), published...); err != nil {
			return 0, fmt.Errorf("failed to mark %d order events published: %w", len(published), err)
		}
	}

	return len(published), publishErr
}
