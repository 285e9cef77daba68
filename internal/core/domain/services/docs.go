// Package services provides domain services that work across several domain
// records of the delivery side of the marketplace.
//
// The package includes:
//   - ServiceAreaMatcher: the address-text heuristic that decides whether an order
//     without a usable city falls inside a worker's service city
//
// Services here are pure: they receive already loaded records and never reach the store.
package services
