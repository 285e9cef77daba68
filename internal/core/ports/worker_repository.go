package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/worker"
)

// WorkerRepository reads delivery worker profiles from the deliveries table.
type WorkerRepository interface {
	// Get looks a worker up by user id.
	// Returns errs.ObjectNotFoundError when the worker has no deliveries row.
	Get(ctx context.Context, userID kernel.UUID) (worker.Worker, error)
}
