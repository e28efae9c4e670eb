package shipper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log-shipper/pkg/event"
	"log-shipper/pkg/telemetry"
)

// dispatchTick drains at most one event from the pending queue and
// routes it by the cached connectivity flag. An empty queue means the
// tick does nothing at all: backlog reconciliation is triggered by a
// live event after a reconnect, not by the timer, so a backlog can sit
// on disk until the next Log call. That is a documented limitation, not
// an oversight.
func (s *Shipper) dispatchTick(ctx context.Context, opts Options) {
	ev, ok := s.queue.Pop()
	if !ok {
		return
	}

	if s.monitor.Online() {
		if s.wasOffline {
			if err := s.reconcile(ctx); err != nil {
				// Flag stays set; reconciliation is retried on a later
				// online tick.
				s.emitErr(err, "backlog_reconcile", telemetry.ErrorSeverityWarning)
			} else {
				s.wasOffline = false
			}
		}
		s.deliver(ctx, ev, opts)
		return
	}

	s.wasOffline = true
	s.persist(ev)
}

// deliver attempts the collector call. A failed event goes back on the
// tail of the queue: at-least-once with unordered retry is the
// contract, so it lines up behind anything enqueued in the meantime.
func (s *Shipper) deliver(ctx context.Context, ev event.Event, opts Options) {
	start := time.Now()
	if err := s.snk.Deliver(ctx, ev); err != nil {
		s.queue.Push(ev)
		s.emit(telemetry.NewDeliveryRetried(ev.Action))
		s.emitErr(err, "sink_deliver", telemetry.ErrorSeverityWarning)
		return
	}
	s.emit(telemetry.NewEventDelivered(ev.Action, opts.ServerURL, time.Since(start)))
}

// persist writes the event to the disk backlog. There is no further
// fallback tier: when both the network and the disk have failed, the
// event is reported and dropped.
func (s *Shipper) persist(ev event.Event) {
	if err := s.store.EnsureDir(); err != nil {
		s.emitErr(err, "backlog_write", telemetry.ErrorSeverityError)
		return
	}
	name, err := s.store.Write(ev)
	if err != nil {
		s.emitErr(err, "backlog_write", telemetry.ErrorSeverityError)
		return
	}
	s.emit(telemetry.NewEventPersisted(ev.Action, name))
}

// reconcile moves every backlog record back into the pending queue,
// fanning out one goroutine per file. Each file is removed whether or
// not it was readable, so a poison record cannot loop forever; an
// unreadable record is reported and its contents abandoned. Only a
// failure to enumerate the directory aborts the round.
func (s *Shipper) reconcile(ctx context.Context) error {
	if err := s.store.EnsureDir(); err != nil {
		return err
	}
	names, err := s.store.List()
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	loaded, discarded := 0, 0

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			ev, err := s.store.Read(name)
			if err != nil {
				s.emitErr(fmt.Errorf("discarding unreadable backlog record: %w", err),
					"backlog_read", telemetry.ErrorSeverityWarning)
				mu.Lock()
				discarded++
				mu.Unlock()
			} else {
				s.queue.Push(ev)
				mu.Lock()
				loaded++
				mu.Unlock()
			}

			if err := s.store.Remove(name); err != nil {
				s.emitErr(err, "backlog_remove", telemetry.ErrorSeverityWarning)
			}
		}(name)
	}
	wg.Wait()

	s.emit(telemetry.NewBacklogReconciled(loaded, discarded))
	return nil
}
