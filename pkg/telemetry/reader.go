package telemetry

type Snapshot struct {
	// Core metrics
	EventsEnqueued    uint64
	EventsDelivered   uint64
	EventsPersisted   uint64
	RetriesTotal      uint64
	ErrorsTotal       uint64
	DeliveredByAction map[string]uint64

	// Backlog state
	BacklogLoaded    uint64
	BacklogDiscarded uint64
	Reconciliations  uint64

	// Connectivity
	Online bool

	// Rate metrics
	EnqueuesPerSecond   float64
	DeliveriesPerSecond float64

	// Latency metrics
	AvgLatencyMs float64
	P95LatencyMs float64

	// System metrics
	UptimeSeconds      float64
	ChannelUtilization float64

	// Error breakdown
	ErrorsByType     map[string]uint64
	ErrorsBySeverity map[ErrorSeverity]uint64
	RecentErrors     []string
}

type Reader interface {
	Snapshot() Snapshot
}
