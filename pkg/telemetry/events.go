package telemetry

import "time"

// Event is a single observation emitted by the shipper. Publishing is
// fire-and-forget; producers are never blocked by a slow consumer.
type Event interface {
	Timestamp() time.Time // When the event occurred
	EventType() string    // For categorization/filtering
}

type EventEnqueued struct {
	timestamp time.Time
	Action    string
}

func (e EventEnqueued) Timestamp() time.Time { return e.timestamp }
func (e EventEnqueued) EventType() string    { return "event_enqueued" }

func NewEventEnqueued(action string) EventEnqueued {
	return EventEnqueued{timestamp: time.Now(), Action: action}
}

type EventDelivered struct {
	timestamp time.Time
	Action    string
	SinkURL   string
	Latency   time.Duration // Time spent in the delivery call
}

func (e EventDelivered) Timestamp() time.Time { return e.timestamp }
func (e EventDelivered) EventType() string    { return "event_delivered" }

func NewEventDelivered(action, sinkURL string, latency time.Duration) EventDelivered {
	return EventDelivered{
		timestamp: time.Now(),
		Action:    action,
		SinkURL:   sinkURL,
		Latency:   latency,
	}
}

type EventPersisted struct {
	timestamp time.Time
	Action    string
	File      string
}

func (e EventPersisted) Timestamp() time.Time { return e.timestamp }
func (e EventPersisted) EventType() string    { return "event_persisted" }

func NewEventPersisted(action, file string) EventPersisted {
	return EventPersisted{timestamp: time.Now(), Action: action, File: file}
}

type DeliveryRetried struct {
	timestamp time.Time
	Action    string
}

func (e DeliveryRetried) Timestamp() time.Time { return e.timestamp }
func (e DeliveryRetried) EventType() string    { return "delivery_retried" }

func NewDeliveryRetried(action string) DeliveryRetried {
	return DeliveryRetried{timestamp: time.Now(), Action: action}
}

type BacklogReconciled struct {
	timestamp time.Time
	Loaded    int // records moved back into the pending queue
	Discarded int // unreadable records dropped
}

func (e BacklogReconciled) Timestamp() time.Time { return e.timestamp }
func (e BacklogReconciled) EventType() string    { return "backlog_reconciled" }

func NewBacklogReconciled(loaded, discarded int) BacklogReconciled {
	return BacklogReconciled{timestamp: time.Now(), Loaded: loaded, Discarded: discarded}
}

type ConnectivityChanged struct {
	timestamp time.Time
	Online    bool
}

func (e ConnectivityChanged) Timestamp() time.Time { return e.timestamp }
func (e ConnectivityChanged) EventType() string    { return "connectivity_changed" }

func NewConnectivityChanged(online bool) ConnectivityChanged {
	return ConnectivityChanged{timestamp: time.Now(), Online: online}
}

type ShipperError struct {
	timestamp time.Time
	Err       error
	Context   string // Where it happened (e.g., "sink_deliver", "backlog_write")
	Severity  ErrorSeverity
}

func (e ShipperError) Timestamp() time.Time { return e.timestamp }
func (e ShipperError) EventType() string    { return "shipper_error" }

func NewShipperError(err error, context string, severity ErrorSeverity) ShipperError {
	return ShipperError{
		timestamp: time.Now(),
		Err:       err,
		Context:   context,
		Severity:  severity,
	}
}

type ErrorSeverity int

const (
	ErrorSeverityInfo ErrorSeverity = iota
	ErrorSeverityWarning
	ErrorSeverityError
	ErrorSeverityCritical
)

type Publisher interface {
	// Publish sends a telemetry event to the aggregator.
	// This is a non-blocking, fire-and-forget call.
	Publish(event Event)
}
