package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/blogkit/pkg/apiclient"
	"github.com/dmitrymomot/blogkit/pkg/plan"
)

// API is the slice of the platform client the orchestrator needs.
// *apiclient.Client satisfies this interface.
type API interface {
	ListPlans(ctx context.Context) ([]apiclient.PlanPayload, error)
	CreateCheckout(ctx context.Context, planID string) (*apiclient.CheckoutPayload, error)
}

// GatewayConfirmer runs the payment gateway's client-side confirmation step
// for an obtained client secret.
type GatewayConfirmer interface {
	Confirm(ctx context.Context, clientSecret string) error
}

// Orchestrator resolves plans and drives payment attempts.
type Orchestrator struct {
	api      API
	gateway  GatewayConfirmer
	fallback *plan.Catalog
	log      *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithFallback replaces the embedded fallback plan table.
func WithFallback(catalog *plan.Catalog) OrchestratorOption {
	return func(o *Orchestrator) {
		if catalog != nil {
			o.fallback = catalog
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// NewOrchestrator creates an orchestrator.
// Panics on nil collaborators to fail fast during initialization.
func NewOrchestrator(api API, gateway GatewayConfirmer, opts ...OrchestratorOption) *Orchestrator {
	if api == nil {
		panic("checkout: API is required")
	}
	if gateway == nil {
		panic("checkout: GatewayConfirmer is required")
	}

	o := &Orchestrator{
		api:      api,
		gateway:  gateway,
		fallback: plan.DefaultFallback(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// StartCheckout resolves the identifier to a concrete plan and returns an
// initiated attempt. The identifier may be empty when the caller supplies an
// in-memory candidate. Returns ErrInvalidPlan when nothing resolves; the
// caller must redirect to plan selection.
func (o *Orchestrator) StartCheckout(ctx context.Context, identifier string, candidate *plan.Plan) (*PaymentAttempt, error) {
	resolved, err := o.resolvePlan(ctx, identifier, candidate)
	if err != nil {
		return nil, err
	}

	return &PaymentAttempt{Plan: resolved, status: StatusInitiated}, nil
}

// Submit obtains the client secret from the platform and runs the gateway
// confirmation. A failed confirmation is surfaced verbatim and leaves the
// attempt at StatusFailed; calling Submit again is the explicit retry.
func (o *Orchestrator) Submit(ctx context.Context, attempt *PaymentAttempt) error {
	if attempt == nil {
		return ErrInvalidTransition
	}
	if attempt.status != StatusInitiated && attempt.status != StatusFailed {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, attempt.status)
	}

	payload, err := o.api.CreateCheckout(ctx, attempt.Plan.ID)
	if err != nil {
		_ = attempt.advance(StatusFailed)
		return fmt.Errorf("create checkout for plan %s: %w", attempt.Plan.ID, err)
	}

	attempt.ClientSecret = payload.ClientSecret
	attempt.Reference = payload.Reference
	if err := attempt.advance(StatusSubmitted); err != nil {
		return err
	}

	if err := o.gateway.Confirm(ctx, attempt.ClientSecret); err != nil {
		_ = attempt.advance(StatusFailed)
		// Verbatim gateway error for the user; no automatic retry.
		return errors.Join(ErrGatewayConfirmation, err)
	}

	return attempt.advance(StatusConfirmed)
}

// resolvePlan applies the three-step resolution order: live list, candidate,
// static fallback.
func (o *Orchestrator) resolvePlan(ctx context.Context, identifier string, candidate *plan.Plan) (plan.Plan, error) {
	if identifier != "" {
		if live, err := o.liveCatalog(ctx); err == nil {
			if p, err := live.Resolve(identifier); err == nil {
				return p, nil
			}
		}
	}

	if candidate != nil {
		if identifier == "" || matchesIdentifier(*candidate, identifier) {
			return *candidate, nil
		}
	}

	if identifier != "" {
		if p, err := o.fallback.Resolve(identifier); err == nil {
			o.log.DebugContext(ctx, "checkout plan resolved from fallback table",
				"identifier", identifier, "plan", p.ID)
			return p, nil
		}
	}

	return plan.Plan{}, fmt.Errorf("%w: %q", ErrInvalidPlan, identifier)
}

func (o *Orchestrator) liveCatalog(ctx context.Context) (*plan.Catalog, error) {
	payloads, err := o.api.ListPlans(ctx)
	if err != nil {
		o.log.DebugContext(ctx, "plan list unavailable, falling back", "error", err)
		return nil, err
	}

	plans := make([]plan.Plan, 0, len(payloads))
	for _, payload := range payloads {
		p, err := plan.FromPayload(payload)
		if err != nil {
			// One drifted row should not sink the whole catalog.
			o.log.WarnContext(ctx, "skipping malformed plan payload",
				"plan", payload.ID, "error", err)
			continue
		}
		if p.Active {
			plans = append(plans, p)
		}
	}
	return plan.NewCatalog(plans), nil
}

func matchesIdentifier(p plan.Plan, identifier string) bool {
	single := plan.NewCatalog([]plan.Plan{p})
	_, err := single.Resolve(identifier)
	return err == nil
}
