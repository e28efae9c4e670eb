package queue

import (
	"sync"

	"log-shipper/pkg/event"
)

// Pending is the in-memory FIFO of events awaiting routing. It is
// unbounded and safe for concurrent use: producers and the backlog
// reconciler append while the dispatch loop pops.
type Pending struct {
	mu    sync.Mutex
	items []event.Event
}

// NewPending creates an empty pending queue.
func NewPending() *Pending {
	return &Pending{}
}

// Push appends an event to the tail of the queue.
func (q *Pending) Push(ev event.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, ev)
}

// Pop removes and returns the head of the queue. The second return
// value is false when the queue is empty.
func (q *Pending) Pop() (event.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return event.Event{}, false
	}
	ev := q.items[0]
	q.items = q.items[1:]
	return ev, true
}

// Len returns the number of queued events.
func (q *Pending) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
