// Package checkout drives a payment attempt from plan selection to the
// gateway's client-side confirmation step.
//
// # Plan resolution
//
// A checkout may start from a plan ID, a tier name, a display name, or no
// identifier at all (when the caller carries an in-memory plan candidate
// that is not yet persisted server-side). The orchestrator resolves the
// identifier in three steps, in order:
//
//  1. the live plan list fetched from the server
//  2. the caller-supplied in-memory candidate
//  3. the static three-tier fallback table
//
// The fallback step is deliberate redundancy, not dead code: it lets the
// checkout screen render plan details even while the plan-list fetch is slow
// or failing. If all three steps fail the attempt is rejected with
// ErrInvalidPlan; payment must never be attempted against an unresolved
// plan.
//
// # Submission
//
// Submit obtains a client secret from the platform API and hands control to
// the gateway confirmer. Gateway errors (network, validation, decline) are
// surfaced verbatim and move the attempt to StatusFailed; there is no
// automatic retry of a failed confirmation. Retrying is an explicit user
// action: calling Submit again.
package checkout
