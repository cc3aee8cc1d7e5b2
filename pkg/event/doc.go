// Package event provides the in-process publish/subscribe channel that links
// payment verification and admin plan assignment to the caches they must
// invalidate.
//
// Exactly two event kinds exist: PaymentConfirmed, published by the payment
// verifier strictly after the verification call's success has been observed,
// and PlanAssigned, published after an acknowledged admin plan assignment.
// Session resolvers and the usage refresher subscribe to both; these are the
// only two triggers allowed to force a refresh outside the periodic timer.
//
// Delivery is best-effort per subscriber: a slow consumer's buffer overflowing
// drops the event rather than blocking the publisher. Consumers treat events
// as invalidation hints backed by a periodic refresh, so a dropped event is
// recovered on the next timer tick.
package event
