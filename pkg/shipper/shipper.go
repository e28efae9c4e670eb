package shipper

import (
	"context"
	"log"
	"sync"
	"time"

	"log-shipper/pkg/backlog"
	"log-shipper/pkg/connectivity"
	"log-shipper/pkg/event"
	"log-shipper/pkg/queue"
	"log-shipper/pkg/sink"
	"log-shipper/pkg/telemetry"
)

// Shipper is the delivery engine: producers enqueue events through Log,
// and a timer-driven dispatch loop routes each one to the collector or,
// while offline, to the disk backlog. Events persisted during an outage
// are reconciled back into the queue on the first dispatched event
// after connectivity returns.
type Shipper struct {
	logger    *log.Logger
	publisher telemetry.Publisher

	mu      sync.Mutex
	opts    *Options
	running bool

	origin event.Origin
	queue  *queue.Pending

	// Built at Run from the current options, unless injected for tests.
	store   *backlog.Store
	snk     sink.Sink
	monitor *connectivity.Monitor

	injectedSink  sink.Sink
	injectedProbe connectivity.Probe

	// Only the dispatch goroutine touches this.
	wasOffline bool

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an unconfigured engine. publisher may be nil to disable
// telemetry. The engine does nothing until SetOptions and Run.
func New(logger *log.Logger, publisher telemetry.Publisher) *Shipper {
	return &Shipper{
		logger:    logger,
		publisher: publisher,
		origin:    event.CurrentOrigin(),
		queue:     queue.NewPending(),
	}
}

// NewWithCollaborators creates an engine with an injected sink and
// probe, for tests.
func NewWithCollaborators(logger *log.Logger, publisher telemetry.Publisher, snk sink.Sink, probe connectivity.Probe) *Shipper {
	s := New(logger, publisher)
	s.injectedSink = snk
	s.injectedProbe = probe
	return s
}

// SetOptions validates and stores the configuration, replacing any
// previous one wholesale. Calling it while the engine runs stores the
// new options but has no effect on the running timers; the next Run
// picks them up.
func (s *Shipper) SetOptions(opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	merged := opts.withDefaults()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = &merged
	return nil
}

// Log enqueues one telemetry event. Before SetOptions it is a silent
// no-op: producers must never be blocked or crashed by the logger, so
// there is nothing to observe here either way. attributes may be nil.
// Events with an empty action are dropped here: the backlog codec
// refuses them, so they could not survive a disk round-trip anyway.
func (s *Shipper) Log(action string, attributes map[string]string) {
	if action == "" {
		return
	}

	s.mu.Lock()
	configured := s.opts != nil
	s.mu.Unlock()
	if !configured {
		return
	}

	ev := event.New(action, attributes, s.origin)
	s.queue.Push(ev)
	s.emit(telemetry.NewEventEnqueued(action))
}

// Run starts the connectivity monitor and the dispatch loop. If the
// engine is already running it is stopped first, so a double Run leaves
// exactly one probe timer and one dispatch timer active. Queue and
// backlog contents from a previous run are picked up where they were
// left.
func (s *Shipper) Run() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts == nil {
		return ErrNotConfigured
	}
	opts := *s.opts

	s.stopLocked()

	s.store = backlog.NewStore(opts.LogPath)

	s.snk = s.injectedSink
	if s.snk == nil {
		s.snk = sink.NewHTTPSink(opts.ServerURL, nil)
	}

	probe := s.injectedProbe
	if probe == nil {
		probe = connectivity.NewHTTPProbe(opts.ProbeURL, opts.ProbeInterval)
	}
	s.monitor = connectivity.NewMonitor(probe, opts.ProbeInterval, s.emit)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	s.monitor.Start(ctx)
	go s.dispatchLoop(ctx, s.done, opts)

	if s.logger != nil {
		s.logger.Printf("shipper started: collector=%s backlog=%s", opts.ServerURL, opts.LogPath)
	}
	return nil
}

// Stop cancels both timers. It is safe to call when not running. An
// in-flight dispatch tick finishes its I/O; queued events stay queued
// and are resumed by a later Run.
func (s *Shipper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Shipper) stopLocked() {
	if !s.running {
		return
	}
	s.cancel()
	<-s.done
	s.monitor.Stop()
	s.cancel = nil
	s.done = nil
	s.running = false

	if s.logger != nil {
		s.logger.Printf("shipper stopped: %d events still pending", s.queue.Len())
	}
}

// Pending returns the number of events currently queued.
func (s *Shipper) Pending() int {
	return s.queue.Len()
}

func (s *Shipper) dispatchLoop(ctx context.Context, done chan struct{}, opts Options) {
	defer close(done)

	ticker := time.NewTicker(opts.DispatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// ctx only gates tick scheduling. The tick body gets a fresh
			// context so Stop never aborts delivery or backlog I/O that is
			// already in flight; stopLocked waits on done for it to finish.
			s.dispatchTick(context.Background(), opts)
		}
	}
}

func (s *Shipper) emit(ev telemetry.Event) {
	if s.publisher != nil {
		s.publisher.Publish(ev)
	}
}

func (s *Shipper) emitErr(err error, where string, severity telemetry.ErrorSeverity) {
	if s.logger != nil {
		s.logger.Printf("%s: %v", where, err)
	}
	s.emit(telemetry.NewShipperError(err, where, severity))
}
