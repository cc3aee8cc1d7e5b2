package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogkit/pkg/event"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	t.Parallel()

	bus := event.NewBus()
	defer bus.Close()

	sub1 := bus.Subscribe(context.Background())
	sub2 := bus.Subscribe(context.Background())

	bus.Publish(event.PaymentConfirmed{Reference: "pi_123", PlanID: "plan_pro"})

	for _, sub := range []*event.Subscription{sub1, sub2} {
		select {
		case e := <-sub.Events():
			confirmed, ok := e.(event.PaymentConfirmed)
			require.True(t, ok)
			assert.Equal(t, "pi_123", confirmed.Reference)
			assert.Equal(t, "plan_pro", confirmed.PlanID)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBusClosedSubscriptionStopsReceiving(t *testing.T) {
	t.Parallel()

	bus := event.NewBus()
	defer bus.Close()

	sub := bus.Subscribe(context.Background())
	sub.Close()
	sub.Close() // idempotent

	bus.Publish(event.PaymentConfirmed{Reference: "pi_123"})

	_, open := <-sub.Events()
	assert.False(t, open, "channel must be closed after Close")
}

func TestBusContextCancellationDetaches(t *testing.T) {
	t.Parallel()

	bus := event.NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub := bus.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, open := <-sub.Events():
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestBusSlowConsumerDoesNotBlockPublisher(t *testing.T) {
	t.Parallel()

	bus := event.NewBus()
	defer bus.Close()

	sub := bus.Subscribe(context.Background())
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := 0; n < 100; n++ {
			bus.Publish(event.PlanAssigned{})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow consumer")
	}
}

func TestBusCloseClosesSubscribers(t *testing.T) {
	t.Parallel()

	bus := event.NewBus()
	sub := bus.Subscribe(context.Background())

	bus.Close()
	bus.Close() // idempotent

	_, open := <-sub.Events()
	assert.False(t, open)

	// Subscribing after close yields an already-closed subscription.
	late := bus.Subscribe(context.Background())
	_, open = <-late.Events()
	assert.False(t, open)
}
