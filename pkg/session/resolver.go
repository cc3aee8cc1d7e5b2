package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/blogkit/pkg/apiclient"
	"github.com/dmitrymomot/blogkit/pkg/event"
)

// Checker performs the remote session check and logout for one audience.
// *apiclient.Client satisfies this interface.
type Checker interface {
	SessionCheck(ctx context.Context, aud apiclient.Audience) (*apiclient.IdentityPayload, error)
	Logout(ctx context.Context, aud apiclient.Audience) error
}

// Resolver reconciles one identity kind against the server. It is the only
// writer of its state machine; see the package documentation for the
// transition rules.
type Resolver struct {
	kind    Kind
	checker Checker
	store   Store
	log     *slog.Logger

	mu       sync.Mutex
	state    State
	identity *Identity

	// generation invalidates in-flight resolutions: a result that arrives
	// after Invalidate or Logout belongs to a superseded view of the world
	// and is discarded instead of applied.
	generation uint64
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the logger. Defaults to slog.Default.
func WithResolverLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a resolver for one identity kind.
// Panics on KindNone or nil collaborators to fail fast during initialization.
func NewResolver(kind Kind, checker Checker, store Store, opts ...ResolverOption) *Resolver {
	if kind != KindUser && kind != KindAdmin {
		panic(ErrInvalidKind)
	}
	if checker == nil {
		panic("session: Checker is required")
	}
	if store == nil {
		panic("session: Store is required")
	}

	r := &Resolver{
		kind:    kind,
		checker: checker,
		store:   store,
		state:   StateUnknown,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Kind returns the identity kind this resolver manages.
func (r *Resolver) Kind() Kind {
	return r.kind
}

// State returns the current state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Identity returns a copy of the confirmed identity, or nil unless the state
// is StatePresent.
func (r *Resolver) Identity() *Identity {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StatePresent || r.identity == nil {
		return nil
	}
	copied := *r.identity
	return &copied
}

// Rehydrate loads the persisted snapshot. The returned profile is
// provisional display data only: the state machine stays at StateUnknown
// until Resolve confirms the session against the server.
func (r *Resolver) Rehydrate(ctx context.Context) (*Snapshot, error) {
	snap, err := r.store.Load(ctx, r.kind)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return snap, nil
}

// Resolve performs the remote session check and applies the outcome:
//
//   - confirmed identity: StatePresent, snapshot written back so later
//     rehydrations have a fresh profile hint
//   - explicit auth failure: StateAbsent, persisted snapshot cleared
//   - anything else (transient, malformed): state unchanged, error returned
//
// A result arriving after the resolver was invalidated mid-flight is
// discarded; the caller sees the current state either way.
func (r *Resolver) Resolve(ctx context.Context) (State, error) {
	r.mu.Lock()
	generation := r.generation
	r.mu.Unlock()

	payload, err := r.checker.SessionCheck(ctx, r.kind.Audience())

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generation != generation {
		r.log.DebugContext(ctx, "discarding stale session resolution",
			"kind", r.kind.String(), "state", r.state.String())
		return r.state, nil
	}

	switch {
	case err == nil:
		r.state = StatePresent
		r.identity = identityFromPayload(r.kind, payload)
		// Write-back happens only on a confirmed remote response, never
		// from persisted data alone.
		snap := &Snapshot{
			Present: true,
			Profile: Profile{Username: payload.Username, Email: payload.Email},
		}
		if saveErr := r.store.Save(ctx, r.kind, snap); saveErr != nil {
			r.log.WarnContext(ctx, "session snapshot write-back failed",
				"kind", r.kind.String(), "error", saveErr)
		}
		return r.state, nil

	case errors.Is(err, apiclient.ErrAuthRequired):
		r.state = StateAbsent
		r.identity = nil
		if clearErr := r.store.Clear(ctx, r.kind); clearErr != nil {
			r.log.WarnContext(ctx, "session snapshot clear failed",
				"kind", r.kind.String(), "error", clearErr)
		}
		return r.state, nil

	default:
		// Transient or malformed: no demotion, no promotion. The retry
		// budget was already spent inside the API client.
		return r.state, err
	}
}

// Invalidate resets the resolver to StateUnknown and supersedes any
// in-flight resolution. Called after a confirmed payment so the next check
// picks up the new plan reference.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	r.state = StateUnknown
	r.identity = nil
}

// Logout ends the session. The server call is best-effort: local state and
// the persisted snapshot are cleared regardless of its outcome, so the
// client fails open to logged-out. The server error, if any, is returned
// for reporting.
func (r *Resolver) Logout(ctx context.Context) error {
	err := r.checker.Logout(ctx, r.kind.Audience())

	r.mu.Lock()
	r.generation++
	r.state = StateAbsent
	r.identity = nil
	r.mu.Unlock()

	if clearErr := r.store.Clear(ctx, r.kind); clearErr != nil {
		err = errors.Join(err, clearErr)
	}
	return err
}

// Watch consumes bus events until the subscription closes, invalidating the
// resolver on every confirmed payment. Run it in its own goroutine:
//
//	go resolver.Watch(bus.Subscribe(ctx))
func (r *Resolver) Watch(sub *event.Subscription) {
	for e := range sub.Events() {
		if _, ok := e.(event.PaymentConfirmed); ok {
			r.Invalidate()
		}
	}
}
