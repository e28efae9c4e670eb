package telemetry

import (
	"context"
	"sync"
	"time"
)

// Clock interface allows for deterministic testing
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Config for telemetry settings
type Config struct {
	BufferSize        int
	MaxRecentErrors   int
	RateWindowSeconds int
}

func DefaultConfig() Config {
	return Config{
		BufferSize:        1000,
		MaxRecentErrors:   50,
		RateWindowSeconds: 10,
	}
}

// Aggregator is the stateful consumer of shipper telemetry. It folds
// published events into counters and rates that readers can snapshot.
type Aggregator struct {
	mu    sync.RWMutex
	clock Clock
	cfg   Config

	// Core counters
	eventsEnqueued  uint64
	eventsDelivered uint64
	eventsPersisted uint64
	retriesTotal    uint64
	errorsTotal     uint64

	// Backlog state
	backlogLoaded    uint64
	backlogDiscarded uint64
	reconciliations  uint64

	// Breakdown
	deliveredByAction map[string]uint64
	errorsByType      map[string]uint64
	errorsBySeverity  map[ErrorSeverity]uint64

	// Rate calculation ring buffers
	enqueueTimes  []time.Time
	deliveryTimes []time.Time

	// Current state
	online bool

	// Recent errors (ring buffer)
	recentErrors []string
	errorIndex   int

	// Latency tracking
	latencies    []time.Duration
	latencyIndex int

	// Control channels
	eventCh chan Event
	done    chan struct{}
	wg      sync.WaitGroup

	startTime time.Time
}

// NewAggregator creates a new telemetry aggregator
func NewAggregator(clock Clock, cfg Config) *Aggregator {
	if clock == nil {
		clock = RealClock{}
	}

	return &Aggregator{
		clock:             clock,
		cfg:               cfg,
		deliveredByAction: make(map[string]uint64),
		errorsByType:      make(map[string]uint64),
		errorsBySeverity:  make(map[ErrorSeverity]uint64),
		enqueueTimes:      make([]time.Time, 0, cfg.RateWindowSeconds*10),
		deliveryTimes:     make([]time.Time, 0, cfg.RateWindowSeconds*10),
		recentErrors:      make([]string, cfg.MaxRecentErrors),
		latencies:         make([]time.Duration, 100), // Keep last 100 latencies for P95
		eventCh:           make(chan Event, cfg.BufferSize),
		done:              make(chan struct{}),
		startTime:         clock.Now(),
	}
}

// Start begins processing telemetry events
func (a *Aggregator) Start(ctx context.Context) {
	a.wg.Add(1)
	go a.processEvents(ctx)
}

// Stop gracefully shuts down the aggregator
func (a *Aggregator) Stop() {
	close(a.done)
	a.wg.Wait()
}

// Publish implements the Publisher interface
func (a *Aggregator) Publish(event Event) {
	select {
	case a.eventCh <- event:
	default:
		// Non-blocking send - drop if channel is full
		// This protects the hot path from being blocked
	}
}

// Snapshot implements the Reader interface
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	now := a.clock.Now()

	enqueuesPerSecond := a.calculateRate(a.enqueueTimes, now)
	deliveriesPerSecond := a.calculateRate(a.deliveryTimes, now)
	avgLatency, p95Latency := a.calculateLatencyMetrics()
	uptime := now.Sub(a.startTime).Seconds()
	channelUtilization := float64(len(a.eventCh)) / float64(cap(a.eventCh)) * 100

	// Copy maps to prevent data races
	actionsCopy := make(map[string]uint64)
	for k, v := range a.deliveredByAction {
		actionsCopy[k] = v
	}
	errorsByTypeCopy := make(map[string]uint64)
	for k, v := range a.errorsByType {
		errorsByTypeCopy[k] = v
	}
	errorsBySeverityCopy := make(map[ErrorSeverity]uint64)
	for k, v := range a.errorsBySeverity {
		errorsBySeverityCopy[k] = v
	}

	// Copy recent errors, newest first
	recentErrors := make([]string, 0)
	if len(a.recentErrors) > 0 {
		for i := 0; i < a.cfg.MaxRecentErrors; i++ {
			idx := (a.errorIndex - i - 1 + len(a.recentErrors)) % len(a.recentErrors)
			if a.recentErrors[idx] != "" {
				recentErrors = append(recentErrors, a.recentErrors[idx])
			}
		}
	}

	return Snapshot{
		EventsEnqueued:      a.eventsEnqueued,
		EventsDelivered:     a.eventsDelivered,
		EventsPersisted:     a.eventsPersisted,
		RetriesTotal:        a.retriesTotal,
		ErrorsTotal:         a.errorsTotal,
		BacklogLoaded:       a.backlogLoaded,
		BacklogDiscarded:    a.backlogDiscarded,
		Reconciliations:     a.reconciliations,
		DeliveredByAction:   actionsCopy,
		Online:              a.online,
		RecentErrors:        recentErrors,
		EnqueuesPerSecond:   enqueuesPerSecond,
		DeliveriesPerSecond: deliveriesPerSecond,
		AvgLatencyMs:        avgLatency,
		P95LatencyMs:        p95Latency,
		UptimeSeconds:       uptime,
		ErrorsByType:        errorsByTypeCopy,
		ErrorsBySeverity:    errorsBySeverityCopy,
		ChannelUtilization:  channelUtilization,
	}
}

func (a *Aggregator) processEvents(ctx context.Context) {
	defer a.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.done:
			return
		case event := <-a.eventCh:
			a.handleEvent(event)
		}
	}
}

func (a *Aggregator) handleEvent(event Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()

	switch e := event.(type) {
	case EventEnqueued:
		a.eventsEnqueued++
		a.addEnqueueTime(now)

	case EventDelivered:
		a.eventsDelivered++
		a.deliveredByAction[e.Action]++
		a.addDeliveryTime(now)
		a.addLatency(e.Latency)

	case EventPersisted:
		a.eventsPersisted++

	case DeliveryRetried:
		a.retriesTotal++

	case BacklogReconciled:
		a.reconciliations++
		a.backlogLoaded += uint64(e.Loaded)
		a.backlogDiscarded += uint64(e.Discarded)

	case ConnectivityChanged:
		a.online = e.Online

	case ShipperError:
		a.errorsTotal++
		a.errorsByType[e.Context]++
		a.errorsBySeverity[e.Severity]++
		a.addRecentError(e.Err.Error())
	}
}

func (a *Aggregator) addEnqueueTime(t time.Time) {
	cutoff := t.Add(-time.Duration(a.cfg.RateWindowSeconds) * time.Second)
	for len(a.enqueueTimes) > 0 && a.enqueueTimes[0].Before(cutoff) {
		a.enqueueTimes = a.enqueueTimes[1:]
	}
	a.enqueueTimes = append(a.enqueueTimes, t)
}

func (a *Aggregator) addDeliveryTime(t time.Time) {
	cutoff := t.Add(-time.Duration(a.cfg.RateWindowSeconds) * time.Second)
	for len(a.deliveryTimes) > 0 && a.deliveryTimes[0].Before(cutoff) {
		a.deliveryTimes = a.deliveryTimes[1:]
	}
	a.deliveryTimes = append(a.deliveryTimes, t)
}

func (a *Aggregator) addLatency(latency time.Duration) {
	a.latencies[a.latencyIndex] = latency
	a.latencyIndex = (a.latencyIndex + 1) % len(a.latencies)
}

func (a *Aggregator) addRecentError(err string) {
	if len(a.recentErrors) == 0 {
		return
	}
	a.recentErrors[a.errorIndex] = err
	a.errorIndex = (a.errorIndex + 1) % len(a.recentErrors)
}

func (a *Aggregator) calculateRate(times []time.Time, now time.Time) float64 {
	if len(times) == 0 {
		return 0.0
	}

	cutoff := now.Add(-time.Duration(a.cfg.RateWindowSeconds) * time.Second)
	count := 0
	for _, t := range times {
		if t.After(cutoff) {
			count++
		}
	}

	return float64(count) / float64(a.cfg.RateWindowSeconds)
}

func (a *Aggregator) calculateLatencyMetrics() (float64, float64) {
	validLatencies := make([]time.Duration, 0)
	for _, lat := range a.latencies {
		if lat > 0 {
			validLatencies = append(validLatencies, lat)
		}
	}
	if len(validLatencies) == 0 {
		return 0.0, 0.0
	}

	var sum time.Duration
	for _, lat := range validLatencies {
		sum += lat
	}
	avg := float64(sum) / float64(len(validLatencies)) / float64(time.Millisecond)

	// P95 approximated by the max of the retained window
	maxLatency := validLatencies[0]
	for _, lat := range validLatencies {
		if lat > maxLatency {
			maxLatency = lat
		}
	}
	p95 := float64(maxLatency) / float64(time.Millisecond)

	return avg, p95
}
