package broadcast

import (
	"sync"

	"livraison/internal/core/domain/model/kernel"
	"livraison/internal/events"
)

// defaultConnectionBuffer is the per-connection channel capacity. A connection
// this far behind is considered dead and gets evicted on the next delivery.
const defaultConnectionBuffer = 16

// Scope describes which deliveries a connection observes: a single delivery
// or all of them. The all-deliveries scope is reserved for privileged roles;
// enforcing that is the transport layer's job since the registry never sees
// roles.
type Scope struct {
	deliveryID kernel.UUID
	all        bool
}

// ScopeDelivery observes a single delivery.
func ScopeDelivery(id kernel.UUID) Scope {
	return Scope{deliveryID: id}
}

// ScopeAll observes every delivery.
func ScopeAll() Scope {
	return Scope{all: true}
}

// Matches reports whether an event for the given delivery falls in scope.
func (s Scope) Matches(deliveryID kernel.UUID) bool {
	return s.all || s.deliveryID.IsEqual(deliveryID)
}

// Connection is one observer's registration. It owns an outbound buffered
// channel that the hub enqueues onto and the transport drains. Connections
// are created by Registry.Subscribe and destroyed by Registry.Unsubscribe;
// callers never construct them directly.
type Connection struct {
	id    uint64
	scope Scope
	ch    chan events.Event

	mu     sync.Mutex
	closed bool
}

// Events returns the channel the transport reads delivered events from.
// The channel is closed when the connection is unsubscribed or evicted.
func (c *Connection) Events() <-chan events.Event {
	return c.ch
}

// deliver attempts a non-blocking enqueue. It returns false when the
// connection is closed or its buffer is full; the hub treats both as a dead
// consumer. The connection mutex makes the send safe against a concurrent
// close.
func (c *Connection) deliver(event events.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.ch <- event:
		return true
	default:
		return false
	}
}

// close marks the connection dead and closes its channel. Idempotent.
func (c *Connection) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}

// Registry tracks live observer connections. All methods are safe under
// concurrent calls from many observer sessions and from the fan-out path.
type Registry struct {
	mu     sync.RWMutex
	nextID uint64
	conns  map[uint64]*Connection
	buffer int
}

// NewRegistry creates an empty registry. buffer sets the per-connection
// channel capacity; zero or negative falls back to the default.
func NewRegistry(buffer int) *Registry {
	if buffer <= 0 {
		buffer = defaultConnectionBuffer
	}
	return &Registry{
		conns:  make(map[uint64]*Connection),
		buffer: buffer,
	}
}

// Subscribe registers a new connection for the given scope and returns it.
func (r *Registry) Subscribe(scope Scope) *Connection {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	conn := &Connection{
		id:    r.nextID,
		scope: scope,
		ch:    make(chan events.Event, r.buffer),
	}
	r.conns[conn.id] = conn
	return conn
}

// Unsubscribe removes the connection and closes its channel. Safe to call at
// any point, including while a broadcast is iterating a snapshot that still
// holds the connection: deliver and close synchronize on the connection
// mutex, so the removed connection is neither delivered to nor crashed on.
// Unsubscribing twice is a no-op.
func (r *Registry) Unsubscribe(conn *Connection) {
	if conn == nil {
		return
	}

	r.mu.Lock()
	delete(r.conns, conn.id)
	r.mu.Unlock()

	conn.close()
}

// ConnectionsFor returns a snapshot of every connection whose scope matches
// the delivery, including all-deliveries subscribers. The snapshot lets the
// fan-out iterate without holding the registry lock.
func (r *Registry) ConnectionsFor(deliveryID kernel.UUID) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*Connection, 0, len(r.conns))
	for _, conn := range r.conns {
		if conn.scope.Matches(deliveryID) {
			matched = append(matched, conn)
		}
	}
	return matched
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Close unsubscribes every remaining connection. Called at shutdown so no
// transport goroutine stays blocked on a drained channel.
func (r *Registry) Close() {
	r.mu.Lock()
	conns := make([]*Connection, 0, len(r.conns))
	for _, conn := range r.conns {
		conns = append(conns, conn)
	}
	r.conns = make(map[uint64]*Connection)
	r.mu.Unlock()

	for _, conn := range conns {
		conn.close()
	}
}
