// Package worker models the delivery worker: an authenticated user with role
// "delivery" whose service area is a single city taken from the deliveries table.
package worker

import (
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Role is the identity role carried by delivery workers.
const Role = "delivery"

// Worker is a delivery worker and the city they serve.
type Worker struct {
	id   kernel.UUID
	city string
}

// RestoreWorker rebuilds a Worker from a deliveries row. Surrounding whitespace in
// city is dropped, so a blank city reads as "no city".
func RestoreWorker(id kernel.UUID, city string) (Worker, error) {
	if err := id.Validate(); err != nil {
		return Worker{}, err
	}
	return Worker{id: id, city: strings.TrimSpace(city)}, nil
}

func (w Worker) ID() kernel.UUID {
	return w.id
}

func (w Worker) City() string {
	return w.city
}

// HasCity reports whether the worker finished profile setup with a service city.
func (w Worker) HasCity() bool {
	return w.city != ""
}
