package usage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrymomot/blogkit/pkg/apiclient"
	"github.com/dmitrymomot/blogkit/pkg/plan"
)

// ErrNoSnapshot indicates no plan data is available yet.
var ErrNoSnapshot = errors.New("no plan snapshot available")

// Source fetches the caller's plan and usage from the server.
// *apiclient.Client satisfies this interface.
type Source interface {
	PlanAndUsage(ctx context.Context) (*apiclient.PlanUsagePayload, error)
}

// Snapshot pairs a plan with the usage counters computed against it.
// ImplicitFree marks accounts that hold no plan reference at all, as opposed
// to an explicit free-tier subscription.
type Snapshot struct {
	Plan         plan.Plan
	Usage        plan.Usage
	ImplicitFree bool
	FetchedAt    time.Time
}

// HasFeature reports whether the snapshot's plan grants the feature.
func (s *Snapshot) HasFeature(f plan.Feature) bool {
	if s == nil {
		return false
	}
	return s.Plan.HasFeature(f)
}

// Resolver fetches and caches the current plan/usage snapshot.
type Resolver struct {
	source       Source
	implicitFree plan.Plan

	mu   sync.Mutex
	snap *Snapshot

	// generation discards in-flight fetches that were superseded by an
	// invalidation, so a pre-payment snapshot can never overwrite a
	// post-payment one.
	generation uint64
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithImplicitFreePlan overrides the plan reported for accounts without a
// plan reference. Defaults to the free tier of the embedded fallback table.
func WithImplicitFreePlan(p plan.Plan) ResolverOption {
	return func(r *Resolver) { r.implicitFree = p }
}

// NewResolver creates a resolver over the given source.
// Panics if source is nil to fail fast during initialization.
func NewResolver(source Source, opts ...ResolverOption) *Resolver {
	if source == nil {
		panic("usage: Source is required")
	}

	free, err := plan.DefaultFallback().ByTier(plan.TierFree)
	if err != nil {
		panic(fmt.Errorf("usage: fallback free plan: %w", err))
	}

	r := &Resolver{source: source, implicitFree: free}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches a fresh snapshot and caches it. On failure the cached
// snapshot is left untouched and the error is returned; callers treat a
// missing snapshot as unknown, never as free tier.
func (r *Resolver) Resolve(ctx context.Context) (*Snapshot, error) {
	r.mu.Lock()
	generation := r.generation
	r.mu.Unlock()

	payload, err := r.source.PlanAndUsage(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := r.snapshotFromPayload(payload)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generation != generation {
		// Superseded mid-flight; keep whatever the newer view produced.
		return r.cachedLocked(), nil
	}

	r.snap = snap
	return r.cachedLocked(), nil
}

// Cached returns a copy of the last resolved snapshot, or nil if none.
func (r *Resolver) Cached() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cachedLocked()
}

func (r *Resolver) cachedLocked() *Snapshot {
	if r.snap == nil {
		return nil
	}
	copied := *r.snap
	return &copied
}

// Invalidate drops the cached snapshot and supersedes in-flight fetches.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	r.snap = nil
}

// HasFeature reports whether the cached plan grants the feature. Returns
// false while no snapshot is available; gating surfaces distinguish that
// case via Cached() == nil before consulting features.
func (r *Resolver) HasFeature(f plan.Feature) bool {
	return r.Cached().HasFeature(f)
}

func (r *Resolver) snapshotFromPayload(payload *apiclient.PlanUsagePayload) (*Snapshot, error) {
	now := time.Now().UTC()

	// plan: null is an explicit server statement that the account has no
	// plan reference, which means the implicit free tier.
	if payload.Plan == nil {
		u := plan.UsageFromPayload(payload.Usage)
		if payload.Usage.Limit == nil {
			u.Limit = r.implicitFree.PostLimit
		}
		return &Snapshot{
			Plan:         r.implicitFree,
			Usage:        u,
			ImplicitFree: true,
			FetchedAt:    now,
		}, nil
	}

	p, err := plan.FromPayload(*payload.Plan)
	if err != nil {
		return nil, errors.Join(apiclient.ErrMalformedResponse, err)
	}

	return &Snapshot{
		Plan:      p,
		Usage:     plan.UsageFromPayload(payload.Usage),
		FetchedAt: now,
	}, nil
}
