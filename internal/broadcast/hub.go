package broadcast

import (
	"log/slog"
	"sync"

	"livraison/internal/events"
)

// defaultQueueSize bounds how many published events may wait for fan-out
// before publishers start dropping instead of blocking.
const defaultQueueSize = 256

// Hub fans published events out to registered connections.
//
// Publish is fire-and-forget: it returns as soon as the event is on the hub
// queue, never after delivery to any observer. A single goroutine drains the
// queue and performs the fan-out, which keeps per-delivery emission order
// intact for every connection. Slow consumers have the event dropped and are
// evicted from the registry on that same delivery attempt.
//
// Example:
//
//	registry := broadcast.NewRegistry(0)
//	hub := broadcast.NewHub(registry, 0, logger)
//	hub.Start()
//	defer hub.Stop()
//
//	conn := registry.Subscribe(broadcast.ScopeDelivery(id))
//	defer registry.Unsubscribe(conn)
//
//	hub.Publish(event)
//	ev := <-conn.Events()
type Hub struct {
	registry *Registry
	queue    chan events.Event
	logger   *slog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	started   chan struct{}
	done      chan struct{}
	drained   chan struct{}
}

// NewHub creates a hub bound to the registry. queueSize bounds the publish
// queue; zero or negative falls back to the default.
func NewHub(registry *Registry, queueSize int, logger *slog.Logger) *Hub {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Hub{
		registry: registry,
		queue:    make(chan events.Event, queueSize),
		logger:   logger.With("component", "broadcast_hub"),
		started:  make(chan struct{}),
		done:     make(chan struct{}),
		drained:  make(chan struct{}),
	}
}

// Start launches the fan-out goroutine. Calling Start more than once is a
// no-op.
func (h *Hub) Start() {
	h.startOnce.Do(func() {
		close(h.started)
		go h.run()
	})
}

// Stop shuts the fan-out down and waits for the in-flight event, if any, to
// finish. Events still queued but not yet fanned out are discarded; the
// at-most-once contract makes that acceptable at shutdown. The started
// channel, closed under startOnce, tells a racing Stop whether a fan-out
// goroutine exists to wait for.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})

	select {
	case <-h.started:
		<-h.drained
	default:
	}
}

// Publish hands the event to the fan-out path and returns immediately.
// When the hub queue is full the event is dropped and logged rather than
// blocking the caller: the publisher is a request handler whose response
// must never wait on observers.
func (h *Hub) Publish(event events.Event) {
	select {
	case h.queue <- event:
	case <-h.done:
		h.logger.Warn("event published after hub stop, dropping",
			"delivery_id", event.DeliveryID.String(), "kind", string(event.Kind))
	default:
		h.logger.Warn("hub queue full, dropping event",
			"delivery_id", event.DeliveryID.String(), "kind", string(event.Kind))
	}
}

func (h *Hub) run() {
	defer close(h.drained)

	for {
		select {
		case <-h.done:
			return
		case event := <-h.queue:
			h.fanOut(event)
		}
	}
}

// fanOut delivers one event to every matching connection. Connections that
// cannot accept the event (full buffer or closed transport) are evicted here,
// lazily, instead of being polled.
func (h *Hub) fanOut(event events.Event) {
	for _, conn := range h.registry.ConnectionsFor(event.DeliveryID) {
		if conn.deliver(event) {
			continue
		}

		h.registry.Unsubscribe(conn)
		h.logger.Debug("evicted slow or closed observer connection",
			"delivery_id", event.DeliveryID.String(), "kind", string(event.Kind))
	}
}
