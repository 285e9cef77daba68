// Package queries contains read operations of the delivery side: listing the
// orders a delivery worker may see, enriched with items, customer and coordinates.
// Queries never write and never open a unit of work.
package queries
