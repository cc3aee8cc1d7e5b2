package event

import (
	"context"
	"sync"
)

// defaultBuffer is the per-subscriber channel capacity. Two event kinds with
// low publish rates make a small buffer sufficient.
const defaultBuffer = 8

// Subscription receives events from a Bus until closed.
type Subscription struct {
	ch     chan Event
	once   sync.Once
	cancel func()
}

// Events returns the channel events are delivered on. The channel is closed
// when the subscription or the bus is closed.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close detaches the subscription from the bus and closes the event channel.
// Safe to call multiple times.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.cancel()
		close(s.ch)
	})
}

// Bus fans events out to all active subscriptions.
// The zero value is not usable; use NewBus.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a new subscription. The subscription is detached
// automatically when ctx is cancelled; callers that outlive their context
// can also call Close directly.
func (b *Bus) Subscribe(ctx context.Context) *Subscription {
	sub := &Subscription{ch: make(chan Event, defaultBuffer)}
	sub.cancel = func() {
		b.mu.Lock()
		delete(b.subs, sub)
		b.mu.Unlock()
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		// Closed bus hands out a pre-closed subscription so consumers
		// see a closed channel instead of blocking forever.
		close(sub.ch)
		sub.once.Do(func() {})
		return sub
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			sub.Close()
		}()
	}

	return sub
}

// Publish delivers the event to every active subscription. Subscribers whose
// buffer is full miss the event; periodic refresh covers the gap.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for sub := range b.subs {
		select {
		case sub.ch <- e:
		default:
		}
	}
}

// Close shuts down the bus and closes all subscriptions.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	subs := make([]*Subscription, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	b.subs = make(map[*Subscription]struct{})
	b.mu.Unlock()

	for _, sub := range subs {
		sub.once.Do(func() { close(sub.ch) })
	}
}
