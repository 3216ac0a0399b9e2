package server

import (
	"net"
	"time"
)

// pendingConn is one accepted connection waiting for a worker. The zero
// value (nil conn) is the termination sentinel: a worker that dequeues it
// exits permanently and never dequeues again.
type pendingConn struct {
	conn net.Conn
	peer string
}

func (p pendingConn) isSentinel() bool { return p.conn == nil }

// dispatcher is the bounded FIFO between the accept loop and the worker
// pool. Enqueue at admission never blocks; a full queue is reported to the
// caller, which answers the client with 503 instead of buffering without
// bound.
type dispatcher struct {
	queue chan pendingConn
}

func newDispatcher(capacity int) *dispatcher {
	if capacity <= 0 {
		capacity = 1
	}
	return &dispatcher{queue: make(chan pendingConn, capacity)}
}

// tryEnqueue hands a connection to the pool, reporting false when the
// queue is full.
func (d *dispatcher) tryEnqueue(pc pendingConn) bool {
	select {
	case d.queue <- pc:
		return true
	default:
		return false
	}
}

// enqueueSentinel blocks until the sentinel fits; at shutdown the workers
// are draining, so space always frees up.
func (d *dispatcher) enqueueSentinel() {
	d.queue <- pendingConn{}
}

// dequeue waits up to timeout for the next entry so workers wake
// periodically even with no traffic.
func (d *dispatcher) dequeue(timeout time.Duration) (pendingConn, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case pc := <-d.queue:
		return pc, true
	case <-timer.C:
		return pendingConn{}, false
	}
}

// depth reports how many connections are waiting.
func (d *dispatcher) depth() int { return len(d.queue) }
