package planadmin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/blogkit/pkg/event"
)

// API is the slice of the platform client the assigner needs.
// *apiclient.Client satisfies this interface.
type API interface {
	AssignPlan(ctx context.Context, userID uuid.UUID, planID *string) error
}

// Assigner drives direct plan assignment for admin users.
type Assigner struct {
	api API
	bus *event.Bus
	log *slog.Logger
}

// AssignerOption configures an Assigner.
type AssignerOption func(*Assigner)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) AssignerOption {
	return func(a *Assigner) {
		if log != nil {
			a.log = log
		}
	}
}

// NewAssigner creates an assigner. The bus may be nil when no resolver needs
// to observe assignments.
// Panics on a nil API to fail fast during initialization.
func NewAssigner(api API, bus *event.Bus, opts ...AssignerOption) *Assigner {
	if api == nil {
		panic("planadmin: API is required")
	}

	a := &Assigner{
		api: api,
		bus: bus,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assign sets the user's plan. A nil planID reverts the user to the implicit
// free tier. PlanAssigned is published only after the server acknowledged the
// change; errors pass through with the client's taxonomy intact, so callers
// can distinguish a missing user (ErrNotFound) from a revoked admin role
// (ErrForbidden).
func (a *Assigner) Assign(ctx context.Context, userID uuid.UUID, planID *string) error {
	if err := a.api.AssignPlan(ctx, userID, planID); err != nil {
		return fmt.Errorf("assign plan to user %s: %w", userID, err)
	}

	a.log.InfoContext(ctx, "plan assigned", "user", userID, "plan", planIDLabel(planID))

	if a.bus != nil {
		a.bus.Publish(event.PlanAssigned{UserID: userID, PlanID: planID})
	}
	return nil
}

// RevertToFree removes the user's explicit plan.
func (a *Assigner) RevertToFree(ctx context.Context, userID uuid.UUID) error {
	return a.Assign(ctx, userID, nil)
}

func planIDLabel(planID *string) string {
	if planID == nil {
		return "free"
	}
	return *planID
}
