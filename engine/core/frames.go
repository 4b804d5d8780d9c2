package core

import (
	"sync"
	"time"
)

// FrameQueue is a display-refresh scheduler: callbacks requested now run on
// the next Dispatch, which the host calls once per presented frame.
// Callbacks requested from inside a callback wait for the following tick.
//
// RequestFrame, CancelFrame and Dispatch belong to the render thread. Post is
// the only method safe to call from other goroutines.
type FrameQueue struct {
	nextID   FrameID
	pending  []frameRequest
	inflight []frameRequest

	mu     sync.Mutex
	posted []func()
	wake   func()
}

type frameRequest struct {
	id FrameID
	cb FrameCallback
}

var _ Scheduler = (*FrameQueue)(nil)

// NewFrameQueue returns an empty queue. wake, if non-nil, is called after
// each Post. Hosts that poll every iteration, as Run does, pass nil; a host
// blocked in an event wait passes the func that interrupts it.
func NewFrameQueue(wake func()) *FrameQueue {
	return &FrameQueue{wake: wake}
}

func (q *FrameQueue) RequestFrame(cb FrameCallback) FrameID {
	q.nextID++
	q.pending = append(q.pending, frameRequest{id: q.nextID, cb: cb})
	return q.nextID
}

// CancelFrame drops a pending request. Cancelling an ID that already ran or
// was never issued is a no-op.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// A callback in the batch being dispatched may cancel a later one.
	for i := range q.inflight {
		if q.inflight[i].id == id {
			q.inflight[i].cb = nil
			return
		}
	}
}

// Pending reports the number of frame callbacks waiting for the next tick.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Dispatch runs the callbacks queued before this call with timestamp now.
func (q *FrameQueue) Dispatch(now time.Duration) int {
	q.inflight = q.pending
	q.pending = nil
	n := 0
	for i := range q.inflight {
		cb := q.inflight[i].cb
		if cb == nil {
			continue
		}
		q.inflight[i].cb = nil
		cb(now)
		n++
	}
	q.inflight = nil
	return n
}

// Post queues fn to run on the render thread at the next RunPosted.
func (q *FrameQueue) Post(fn func()) {
	q.mu.Lock()
	q.posted = append(q.posted, fn)
	q.mu.Unlock()
	if q.wake != nil {
		q.wake()
	}
}

// RunPosted drains work handed over by Post.
func (q *FrameQueue) RunPosted() {
	q.mu.Lock()
	fns := q.posted
	q.posted = nil
	q.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
