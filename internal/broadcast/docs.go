// Package broadcast delivers transition events to connected observers.
//
// The package has two halves. The Registry tracks live observer connections,
// keyed by delivery scope (one delivery or all deliveries), and is the only
// structure mutated concurrently by observer lifecycle calls and the fan-out
// path. The Hub accepts published events on a bounded queue and fans each one
// out to every matching connection from a single goroutine, so events for a
// given delivery reach any one connection in publish order.
//
// Delivery is best-effort by design: the fan-out enqueue onto a connection's
// buffered channel never blocks. A connection that cannot keep up has the
// event dropped and is evicted, so one slow observer never delays the
// publisher or other observers. Clients that miss an event re-read current
// state from the store.
//
// The Registry and Hub are owned instances created at service start and torn
// down at shutdown; nothing in this package is process-global.
package broadcast
