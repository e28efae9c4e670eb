package event

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"
)

// Event is a single telemetry record. It is immutable after construction
// and travels by value through the queue and the backlog store; delivery
// state is implied by whichever component currently holds it.
type Event struct {
	Action     string            `json:"action"`
	Date       int64             `json:"date"` // milliseconds since epoch
	Attributes map[string]string `json:"attributes,omitempty"`
	Origin     Origin            `json:"origin"`
}

// Origin carries fixed contextual fields attached at enqueue time.
// It is constant for the lifetime of the process.
type Origin struct {
	OS       string `json:"os"`
	Hostname string `json:"hostname,omitempty"`
}

// CurrentOrigin returns the origin metadata for this process.
func CurrentOrigin() Origin {
	hostname, _ := os.Hostname()
	return Origin{
		OS:       runtime.GOOS,
		Hostname: hostname,
	}
}

// New creates an event stamped with the current time. The attributes
// map is copied so later mutation by the caller cannot reach the event.
func New(action string, attributes map[string]string, origin Origin) Event {
	var attrs map[string]string
	if len(attributes) > 0 {
		attrs = make(map[string]string, len(attributes))
		for k, v := range attributes {
			attrs[k] = v
		}
	}
	return Event{
		Action:     action,
		Date:       time.Now().UnixMilli(),
		Attributes: attrs,
		Origin:     origin,
	}
}

// Marshal serializes the event for the backlog store.
func Marshal(ev Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal restores an event written by Marshal. An event with an empty
// action is rejected so that truncated or foreign files do not round-trip
// into the queue as blanks.
func Unmarshal(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if ev.Action == "" {
		return Event{}, fmt.Errorf("event has no action")
	}
	return ev, nil
}
