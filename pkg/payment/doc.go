// Package payment verifies a payment reference against the server after the
// gateway redirect lands on the post-payment screen.
//
// Verification is queried once per mount, not continuously: the reference
// arrives via the redirect callback and the server answer is pending,
// confirmed, or failed. Terminal answers are cached, so verifying the same
// resolved reference again is an idempotent read with no further network
// traffic, and concurrent calls for one reference collapse into a single
// server query. Exactly one verification resolves each reference.
//
// A confirmed verification publishes PaymentConfirmed on the event bus
// strictly after the success was observed. Session resolvers invalidate
// their cached identity and the usage refresher forces a plan refresh off
// that event, which is what makes the post-payment ordering guarantee hold:
// nobody reads plan data concurrently with the verification that changes it.
//
// The verification response and the profile endpoint can be eventually
// consistent with each other: the verify call may return before the profile
// write is visible. AwaitPlanVisible polls the profile with a short bounded
// schedule for that window; when it gives up, callers surface a manual
// refresh affordance instead of looping forever.
package payment
