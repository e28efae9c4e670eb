package connectivity

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"log-shipper/pkg/telemetry"
)

// Monitor wraps a Probe behind a cached boolean so the dispatch path
// never blocks on a live network check. The flag is refreshed on a
// timer; each tick fires the probe without waiting for the previous
// one, so overlapping probes are last-writer-wins.
type Monitor struct {
	probe    Probe
	interval time.Duration
	emit     func(telemetry.Event)

	online atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a stopped monitor. emit may be nil.
func NewMonitor(probe Probe, interval time.Duration, emit func(telemetry.Event)) *Monitor {
	return &Monitor{
		probe:    probe,
		interval: interval,
		emit:     emit,
	}
}

// Online returns the most recent probe result. It is false until the
// first probe completes.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// SetOnline overwrites the cached flag until the next probe completes.
// Hosts with their own reachability signal can seed the flag instead of
// waiting for the first probe.
func (m *Monitor) SetOnline(online bool) {
	previous := m.online.Swap(online)
	if previous != online && m.emit != nil {
		m.emit(telemetry.NewConnectivityChanged(online))
	}
}

// Start launches the periodic probe loop. An immediate probe is fired
// before the first tick so the flag settles without waiting a full
// interval. Starting an already-running monitor restarts it.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()

	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	go m.run(loopCtx, m.done)
}

// Stop halts the probe loop. A probe already in flight completes and
// writes its result; the flag keeps its last value.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Monitor) stopLocked() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel = nil
	m.done = nil
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	// Settle the flag right away instead of waiting a full interval.
	m.refresh(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Fire and forget: ticks stay wall-clock periodic even
			// when the probe is slower than the interval.
			go m.refresh(ctx)
		}
	}
}

// refresh runs one probe cycle and overwrites the cached flag. Any
// probe failure, including a panic, counts as offline for this cycle.
func (m *Monitor) refresh(ctx context.Context) {
	online := m.check(ctx)
	previous := m.online.Swap(online)
	if previous != online && m.emit != nil {
		m.emit(telemetry.NewConnectivityChanged(online))
	}
}

func (m *Monitor) check(ctx context.Context) (online bool) {
	defer func() {
		if r := recover(); r != nil {
			online = false
			if m.emit != nil {
				m.emit(telemetry.NewShipperError(
					fmt.Errorf("connectivity probe panicked: %v", r),
					"connectivity_probe", telemetry.ErrorSeverityError))
			}
		}
	}()

	online, err := m.probe.Check(ctx)
	if err != nil {
		return false
	}
	return online
}
