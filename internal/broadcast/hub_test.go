package broadcast_test

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"livraison/internal/broadcast"
	"livraison/internal/core/domain/model/kernel"
	"livraison/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T, registry *broadcast.Registry, queueSize int) *broadcast.Hub {
	t.Helper()

	hub := broadcast.NewHub(registry, queueSize, slog.New(slog.DiscardHandler))
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func receiveEvent(t *testing.T, conn *broadcast.Connection) events.Event {
	t.Helper()

	select {
	case event, open := <-conn.Events():
		require.True(t, open, "connection closed while an event was expected")
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return events.Event{}
	}
}

func assertNoEvent(t *testing.T, conn *broadcast.Connection) {
	t.Helper()

	select {
	case event, open := <-conn.Events():
		if open {
			t.Fatalf("unexpected event received: %v", event)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_ScopedDelivery(t *testing.T) {
	registry := broadcast.NewRegistry(0)
	hub := newTestHub(t, registry, 0)

	watchedID := kernel.NewUUID()
	otherID := kernel.NewUUID()

	watcher := registry.Subscribe(broadcast.ScopeDelivery(watchedID))
	everything := registry.Subscribe(broadcast.ScopeAll())

	hub.Publish(testEvent(otherID))
	hub.Publish(testEvent(watchedID))

	t.Run("scoped observer only sees its delivery", func(t *testing.T) {
		event := receiveEvent(t, watcher)
		assert.True(t, event.DeliveryID.IsEqual(watchedID))
		assertNoEvent(t, watcher)
	})

	t.Run("all scope sees every delivery", func(t *testing.T) {
		first := receiveEvent(t, everything)
		second := receiveEvent(t, everything)
		assert.True(t, first.DeliveryID.IsEqual(otherID))
		assert.True(t, second.DeliveryID.IsEqual(watchedID))
	})
}

func TestHub_PreservesPublishOrderPerDelivery(t *testing.T) {
	registry := broadcast.NewRegistry(64)
	hub := newTestHub(t, registry, 64)

	deliveryID := kernel.NewUUID()
	conn := registry.Subscribe(broadcast.ScopeDelivery(deliveryID))

	published := make([]events.Event, 0, 20)
	for range 20 {
		event := testEvent(deliveryID)
		published = append(published, event)
		hub.Publish(event)
	}

	for i, want := range published {
		got := receiveEvent(t, conn)
		assert.Equal(t, want.ActorID, got.ActorID, "event %d out of order", i)
	}
}

func TestHub_SlowConsumerIsDroppedAndEvicted(t *testing.T) {
	registry := broadcast.NewRegistry(1)
	hub := newTestHub(t, registry, 16)

	deliveryID := kernel.NewUUID()
	slow := registry.Subscribe(broadcast.ScopeDelivery(deliveryID))
	healthy := registry.Subscribe(broadcast.ScopeDelivery(deliveryID))

	// First event fills the slow connection's single-slot buffer.
	hub.Publish(testEvent(deliveryID))
	receiveEvent(t, healthy)

	// Second event cannot be enqueued for the slow connection and evicts it.
	hub.Publish(testEvent(deliveryID))
	receiveEvent(t, healthy)

	require.Eventually(t, func() bool {
		return registry.Len() == 1
	}, time.Second, 5*time.Millisecond, "slow connection was not evicted")

	// The evicted connection still holds the one event it accepted, then its
	// channel closes. The healthy observer keeps receiving.
	receiveEvent(t, slow)
	_, open := <-slow.Events()
	assert.False(t, open)

	hub.Publish(testEvent(deliveryID))
	receiveEvent(t, healthy)
}

func TestHub_UnsubscribedConnectionReceivesNothing(t *testing.T) {
	registry := broadcast.NewRegistry(0)
	hub := newTestHub(t, registry, 0)

	deliveryID := kernel.NewUUID()
	conn := registry.Subscribe(broadcast.ScopeDelivery(deliveryID))
	stays := registry.Subscribe(broadcast.ScopeDelivery(deliveryID))

	registry.Unsubscribe(conn)
	hub.Publish(testEvent(deliveryID))

	receiveEvent(t, stays)
	assertNoEvent(t, conn)
}

func TestHub_PublishDoesNotBlockWithoutObservers(t *testing.T) {
	registry := broadcast.NewRegistry(0)
	hub := newTestHub(t, registry, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 100 {
			hub.Publish(testEvent(kernel.NewUUID()))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked with no observers connected")
	}
}

func TestHub_StopIsIdempotent(t *testing.T) {
	registry := broadcast.NewRegistry(0)
	hub := broadcast.NewHub(registry, 0, slog.New(slog.DiscardHandler))
	hub.Start()

	hub.Stop()
	hub.Stop()

	// Publishing after stop is dropped, never blocks or panics.
	hub.Publish(testEvent(kernel.NewUUID()))
}

func TestHub_StopWithoutStart(t *testing.T) {
	registry := broadcast.NewRegistry(0)
	hub := broadcast.NewHub(registry, 0, slog.New(slog.DiscardHandler))

	hub.Stop()
}

func TestHub_ConcurrentStartAndStop(t *testing.T) {
	registry := broadcast.NewRegistry(0)
	hub := broadcast.NewHub(registry, 0, slog.New(slog.DiscardHandler))

	// Start and Stop race from separate goroutines, as they do when a failed
	// bootstrap tears the service down while another path is still starting
	// it. Must terminate without racing on the started signal.
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Start()
		}()
		go func() {
			defer wg.Done()
			hub.Stop()
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("concurrent Start/Stop did not terminate")
	}

	hub.Stop()
}
