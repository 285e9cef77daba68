// Package order provides the Order aggregate as seen by delivery workers.
//
// The package includes:
//   - Order: an order row narrowed into a typed record (RestoreOrder)
//   - Item: an order line with the price captured at checkout
//   - Status: the closed status vocabulary, parsed at the boundary
//   - StatusChange: the update payload and ownership guard for a status transition
//   - StatusChangedEvent: the change-feed notification written after a transition
//
// Delivery-relevant lifecycle:
//
//	ready_for_pickup --(claim)--> out_for_delivery --(complete)--> delivered
//	out_for_delivery --(release)--> ready_for_pickup
//
// delivered is terminal. Claiming and completing stamp the worker as owner and
// are guarded by "delivery_id IS NULL OR delivery_id = worker"; releasing
// clears the owner unconditionally.
package order
