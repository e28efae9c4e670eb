package queue

import (
	"fmt"
	"sync"
	"testing"

	"log-shipper/pkg/event"
)

func TestPending_FIFOOrder(t *testing.T) {
	q := NewPending()
	for i := 0; i < 5; i++ {
		q.Push(event.Event{Action: fmt.Sprintf("a%d", i)})
	}
	if q.Len() != 5 {
		t.Fatalf("expected 5 queued events, got %d", q.Len())
	}
	for i := 0; i < 5; i++ {
		ev, ok := q.Pop()
		if !ok {
			t.Fatalf("expected event at position %d", i)
		}
		if want := fmt.Sprintf("a%d", i); ev.Action != want {
			t.Fatalf("expected %q at position %d, got %q", want, i, ev.Action)
		}
	}
}

func TestPending_PopEmpty(t *testing.T) {
	q := NewPending()
	if _, ok := q.Pop(); ok {
		t.Fatalf("expected pop on empty queue to report empty")
	}
}

func TestPending_RetryGoesToTail(t *testing.T) {
	q := NewPending()
	q.Push(event.Event{Action: "first"})
	q.Push(event.Event{Action: "second"})

	ev, _ := q.Pop()
	q.Push(ev) // failed delivery re-queues at the tail

	next, _ := q.Pop()
	if next.Action != "second" {
		t.Fatalf("expected retried event behind newer ones, got %q", next.Action)
	}
	last, _ := q.Pop()
	if last.Action != "first" {
		t.Fatalf("expected retried event at tail, got %q", last.Action)
	}
}

func TestPending_ConcurrentPush(t *testing.T) {
	q := NewPending()
	var wg sync.WaitGroup
	const producers = 8
	const perProducer = 100

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(event.Event{Action: "burst"})
			}
		}()
	}
	wg.Wait()

	if q.Len() != producers*perProducer {
		t.Fatalf("expected %d events, got %d", producers*perProducer, q.Len())
	}
}
