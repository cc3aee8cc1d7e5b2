package checkout

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/blogkit/pkg/plan"
)

// Status is the payment attempt's position in its lifecycle.
type Status uint8

const (
	// StatusInitiated means the plan is resolved and no money has moved.
	StatusInitiated Status = iota
	// StatusSubmitted means a client secret was obtained and the gateway
	// confirmation is underway.
	StatusSubmitted
	// StatusConfirmed means the gateway accepted the confirmation. Final
	// truth still comes from server-side payment verification.
	StatusConfirmed
	// StatusFailed means submission or confirmation failed. Terminal until
	// the user explicitly retries.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusInitiated:
		return "initiated"
	case StatusSubmitted:
		return "submitted"
	case StatusConfirmed:
		return "confirmed"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// legalTransitions encodes the attempt lifecycle. Failed back to submitted
// is the explicit user retry path.
var legalTransitions = map[Status][]Status{
	StatusInitiated: {StatusSubmitted, StatusFailed},
	StatusSubmitted: {StatusConfirmed, StatusFailed},
	StatusFailed:    {StatusSubmitted},
}

// PaymentAttempt tracks one checkout from initiation to its terminal state.
// It is created by the orchestrator and discarded after the payment
// reference reaches a terminal resolution in the verifier.
type PaymentAttempt struct {
	Plan         plan.Plan
	ClientSecret string
	Reference    string

	status Status
}

// Status returns the attempt's current status.
func (a *PaymentAttempt) Status() Status {
	return a.status
}

// advance moves the attempt to the next status, rejecting illegal jumps so
// a bug elsewhere cannot, say, confirm an attempt that was never submitted.
func (a *PaymentAttempt) advance(to Status) error {
	if !slices.Contains(legalTransitions[a.status], to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.status, to)
	}
	a.status = to
	return nil
}
