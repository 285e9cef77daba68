// Package kernel provides the value objects shared by every aggregate of the
// delivery domain.
//
// The package includes:
//   - UUID: identifiers of orders, users, delivery workers and addresses
//   - Coordinates: a validated latitude/longitude pair attached to addresses
//
// Both are immutable. Their zero values are invalid and fail Validate, so a
// value read from the store must be rebuilt through a constructor before the
// core trusts it.
package kernel
