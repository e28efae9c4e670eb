package testutil

import (
	"sync"

	"log-shipper/pkg/telemetry"
)

// CapturingPublisher collects telemetry events for assertions in tests.
type CapturingPublisher struct {
	mu     sync.Mutex
	Events []telemetry.Event
}

func NewCapturingPublisher() *CapturingPublisher { return &CapturingPublisher{} }

func (c *CapturingPublisher) Publish(event telemetry.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Events = append(c.Events, event)
}

func (c *CapturingPublisher) Snapshot() []telemetry.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]telemetry.Event, len(c.Events))
	copy(out, c.Events)
	return out
}

// ErrorsWithContext returns the captured shipper errors whose context
// matches where.
func (c *CapturingPublisher) ErrorsWithContext(where string) []telemetry.ShipperError {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []telemetry.ShipperError
	for _, ev := range c.Events {
		if se, ok := ev.(telemetry.ShipperError); ok && se.Context == where {
			out = append(out, se)
		}
	}
	return out
}
