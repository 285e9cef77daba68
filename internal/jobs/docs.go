// Package jobs provides scheduled background tasks for the delivery service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OrderEventsRelayJob runs every second. It reads unpublished rows of the
// order_events outbox, publishes them to the change feed in order and marks
// them published. Delivery is at least once: a crash between publish and mark
// republishes the batch on the next tick.
//
// # Usage
//
//	relay := jobs.NewOrderEventsRelayJob(outboxRepo, producer, jobs.DefaultRelayBatchSize, logger)
//	jobManager := jobs.NewJobManager(relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A failed outbox read or publish is logged and retried on the next tick
//   - Failed job starts stop any already running jobs
package jobs
