package testutil

import (
	"context"
	"sync"

	"log-shipper/pkg/event"
)

// MockSink is a reusable mock that implements sink.Sink for tests.
// It records every delivery attempt and can be told to fail.
type MockSink struct {
	mu           sync.Mutex
	DeliverError error
	CloseError   error

	DeliverCalls []event.Event
	CloseCalled  bool
}

func (m *MockSink) Deliver(ctx context.Context, ev event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeliverCalls = append(m.DeliverCalls, ev)
	return m.DeliverError
}

func (m *MockSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	return m.CloseError
}

// SetDeliverError changes the error returned by subsequent deliveries.
func (m *MockSink) SetDeliverError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeliverError = err
}

// Delivered returns a copy of the delivery attempts so far.
func (m *MockSink) Delivered() []event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]event.Event, len(m.DeliverCalls))
	copy(out, m.DeliverCalls)
	return out
}
