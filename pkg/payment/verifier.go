package payment

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/blogkit/pkg/apiclient"
	"github.com/dmitrymomot/blogkit/pkg/event"
)

// Status is the server-side payment state.
type Status uint8

const (
	StatusPending Status = iota
	StatusConfirmed
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusFailed
}

// Result is the outcome of a verification.
type Result struct {
	Status Status
	PlanID string
}

// API is the slice of the platform client the verifier needs.
// *apiclient.Client satisfies this interface.
type API interface {
	VerifyPayment(ctx context.Context, reference string) (*apiclient.VerifyPayload, error)
	Profile(ctx context.Context) (*apiclient.IdentityPayload, error)
}

// Verifier resolves payment references to their terminal state.
type Verifier struct {
	api API
	bus *event.Bus
	log *slog.Logger

	pollInterval time.Duration
	pollAttempts uint64

	group singleflight.Group

	mu       sync.RWMutex
	resolved map[string]Result // terminal results only
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithVerifierLogger sets the logger. Defaults to slog.Default.
func WithVerifierLogger(log *slog.Logger) VerifierOption {
	return func(v *Verifier) {
		if log != nil {
			v.log = log
		}
	}
}

// WithConsistencyWindow tunes the AwaitPlanVisible poll schedule. The
// default of 5 attempts a second apart covers the seconds-scale staleness
// the profile endpoint is allowed.
func WithConsistencyWindow(interval time.Duration, attempts uint64) VerifierOption {
	return func(v *Verifier) {
		if interval > 0 {
			v.pollInterval = interval
		}
		if attempts > 0 {
			v.pollAttempts = attempts
		}
	}
}

// NewVerifier creates a verifier. The bus may be nil when no consumer needs
// invalidation events (tests, one-shot tools).
// Panics on a nil API to fail fast during initialization.
func NewVerifier(api API, bus *event.Bus, opts ...VerifierOption) *Verifier {
	if api == nil {
		panic("payment: API is required")
	}

	v := &Verifier{
		api:          api,
		bus:          bus,
		log:          slog.Default(),
		pollInterval: time.Second,
		pollAttempts: 5,
		resolved:     make(map[string]Result),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify resolves a payment reference. Terminal results are cached and
// returned without another server query; concurrent calls for the same
// reference share one query. A confirmed result publishes PaymentConfirmed
// after the success is observed, exactly once per reference.
func (v *Verifier) Verify(ctx context.Context, reference string) (Result, error) {
	v.mu.RLock()
	result, done := v.resolved[reference]
	v.mu.RUnlock()
	if done {
		return result, nil
	}

	value, err, _ := v.group.Do(reference, func() (any, error) {
		// A concurrent winner may have resolved it while we queued.
		v.mu.RLock()
		cached, done := v.resolved[reference]
		v.mu.RUnlock()
		if done {
			return cached, nil
		}

		payload, err := v.api.VerifyPayment(ctx, reference)
		if err != nil {
			return Result{}, err
		}

		result, err := resultFromPayload(payload)
		if err != nil {
			return Result{}, err
		}

		if result.Status.Terminal() {
			v.mu.Lock()
			v.resolved[reference] = result
			v.mu.Unlock()
		}

		if result.Status == StatusConfirmed && v.bus != nil {
			// Published only after the verification success was observed,
			// so forced refreshes read post-assignment plan data.
			v.bus.Publish(event.PaymentConfirmed{Reference: reference, PlanID: result.PlanID})
		}

		return result, nil
	})
	if err != nil {
		return Result{}, err
	}
	return value.(Result), nil
}

// AwaitPlanVisible polls the profile until it reflects the given plan,
// bounded by the consistency window. Callers may invoke it again as the
// manual retry affordance; it performs no side effects beyond the reads.
func (v *Verifier) AwaitPlanVisible(ctx context.Context, planID string) error {
	backoff := retry.WithMaxRetries(v.pollAttempts, retry.NewConstant(v.pollInterval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		profile, err := v.api.Profile(ctx)
		if err != nil {
			return retry.RetryableError(err)
		}
		if profile.PlanID != planID {
			return retry.RetryableError(fmt.Errorf("%w: have %q, want %q",
				ErrPlanNotVisible, profile.PlanID, planID))
		}
		return nil
	})
	if err != nil {
		v.log.DebugContext(ctx, "plan not visible within consistency window",
			"plan", planID, "error", err)
	}
	return err
}

func resultFromPayload(payload *apiclient.VerifyPayload) (Result, error) {
	switch payload.Status {
	case "pending":
		return Result{Status: StatusPending, PlanID: payload.PlanID}, nil
	case "confirmed":
		return Result{Status: StatusConfirmed, PlanID: payload.PlanID}, nil
	case "failed":
		return Result{Status: StatusFailed, PlanID: payload.PlanID}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownStatus, payload.Status)
	}
}
