package usage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/blogkit/pkg/event"
)

// Refresher drives the resolver on a fixed interval and applies the two
// forced-refresh triggers (payment confirmed, plan assigned) from the event
// bus. Stop is the cancellation handle a consuming view ties to its own
// lifetime; after Stop no further state updates happen.
type Refresher struct {
	resolver *Resolver
	interval time.Duration
	bus      *event.Bus
	log      *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// RefresherOption configures a Refresher.
type RefresherOption func(*Refresher)

// WithBus attaches the event bus that delivers forced-refresh triggers.
func WithBus(bus *event.Bus) RefresherOption {
	return func(f *Refresher) { f.bus = bus }
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) RefresherOption {
	return func(f *Refresher) {
		if log != nil {
			f.log = log
		}
	}
}

// NewRefresher creates a refresher. It does nothing until Start is called.
// Panics on a nil resolver or non-positive interval to fail fast.
func NewRefresher(resolver *Resolver, interval time.Duration, opts ...RefresherOption) *Refresher {
	if resolver == nil {
		panic("usage: Resolver is required")
	}
	if interval <= 0 {
		panic("usage: refresh interval must be positive")
	}

	f := &Refresher{
		resolver: resolver,
		interval: interval,
		log:      slog.Default(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start launches the refresh loop. The loop ends when ctx is cancelled or
// Stop is called.
func (f *Refresher) Start(ctx context.Context) {
	go f.run(ctx)
}

// Stop ends the refresh loop and waits for it to finish. In-flight results
// arriving afterwards are discarded by the resolver's generation guard.
// Safe to call multiple times.
func (f *Refresher) Stop() {
	f.stopOnce.Do(func() { close(f.stop) })
	<-f.done
}

func (f *Refresher) run(ctx context.Context) {
	defer close(f.done)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	var events <-chan event.Event
	if f.bus != nil {
		sub := f.bus.Subscribe(ctx)
		defer sub.Close()
		events = sub.Events()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-f.stop:
			return
		case <-ticker.C:
			f.refresh(ctx, false)
		case e, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			switch e.(type) {
			case event.PaymentConfirmed, event.PlanAssigned:
				// Forced refresh: the event is published only after the
				// triggering call succeeded, so this fetch observes the
				// server-side assignment, never races it.
				f.refresh(ctx, true)
			}
		}
	}
}

func (f *Refresher) refresh(ctx context.Context, forced bool) {
	if forced {
		f.resolver.Invalidate()
	}
	if _, err := f.resolver.Resolve(ctx); err != nil {
		f.log.WarnContext(ctx, "plan/usage refresh failed", "forced", forced, "error", err)
	}
}
