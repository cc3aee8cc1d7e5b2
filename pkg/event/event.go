package event

import "github.com/google/uuid"

// Event is a cache-invalidation signal carried by the Bus.
type Event interface {
	Kind() string
}

// PaymentConfirmed signals that a payment reference reached its confirmed
// terminal state and the caller's plan may have changed server-side.
type PaymentConfirmed struct {
	Reference string
	PlanID    string
}

func (PaymentConfirmed) Kind() string { return "payment_confirmed" }

// PlanAssigned signals that an administrator set (or cleared) a user's plan.
// PlanID is nil when the user was reverted to the implicit free tier.
type PlanAssigned struct {
	UserID uuid.UUID
	PlanID *string
}

func (PlanAssigned) Kind() string { return "plan_assigned" }
