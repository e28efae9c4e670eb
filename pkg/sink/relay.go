package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"

	"log-shipper/pkg/crypto"
	"log-shipper/pkg/event"
	"log-shipper/pkg/relay"
	"log-shipper/pkg/telemetry"
)

// Kind used for telemetry records published to a relay.
const telemetryEventKind = 30078 // application-specific data

const maxConnectAttempts = 3

// RelaySink publishes each telemetry event as a signed nostr event to a
// configured relay. It is the alternative collector backend for
// deployments that already run a relay instead of an HTTP collector.
type RelaySink struct {
	relayURL string
	keys     crypto.KeyPair
	emit     func(telemetry.Event)

	conn relay.Relay
}

// NewRelaySink creates a disconnected relay sink. The connection is
// established lazily on the first Deliver. emit may be nil.
func NewRelaySink(relayURL string, keys crypto.KeyPair, emit func(telemetry.Event)) *RelaySink {
	return &RelaySink{relayURL: relayURL, keys: keys, emit: emit}
}

// NewRelaySinkWithRelay creates a relay sink with an injected relay
// connection, for tests.
func NewRelaySinkWithRelay(r relay.Relay, keys crypto.KeyPair, emit func(telemetry.Event)) *RelaySink {
	return &RelaySink{conn: r, keys: keys, emit: emit}
}

func (s *RelaySink) Deliver(ctx context.Context, ev event.Event) error {
	if s.conn == nil {
		if err := s.connect(ctx); err != nil {
			return err
		}
	}

	payload, err := event.Marshal(ev)
	if err != nil {
		return err
	}

	nev := nostr.Event{
		PubKey:    s.keys.PublicKeyHex,
		CreatedAt: nostr.Timestamp(ev.Date / 1000),
		Kind:      telemetryEventKind,
		Tags:      nostr.Tags{{"d", "log-shipper"}, {"action", ev.Action}},
		Content:   string(payload),
	}
	if err := nev.Sign(s.keys.PrivateKeyHex); err != nil {
		return fmt.Errorf("failed to sign relay event: %w", err)
	}

	if err := s.conn.Publish(ctx, nev); err != nil {
		// Drop the connection so the next attempt reconnects.
		_ = s.conn.Close()
		s.conn = nil
		s.emitErr(err, "relay_publish")
		return fmt.Errorf("failed to publish to relay: %w", err)
	}
	return nil
}

// connect dials the relay with bounded retry and linear backoff between
// attempts. Unlike a startup-time connection this must not panic: a
// failed connect is a delivery failure and the event is retried later.
func (s *RelaySink) connect(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		r, err := nostr.RelayConnect(ctx, s.relayURL)
		if err == nil {
			s.conn = r
			return nil
		}
		lastErr = err
		s.emitErr(fmt.Errorf("attempt %d/%d failed to connect to relay (%s): %w",
			attempt, maxConnectAttempts, s.relayURL, err), "relay_connect")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("failed to connect to relay (%s) after %d attempts: %w",
		s.relayURL, maxConnectAttempts, lastErr)
}

func (s *RelaySink) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *RelaySink) emitErr(err error, where string) {
	if s.emit != nil {
		s.emit(telemetry.NewShipperError(err, where, telemetry.ErrorSeverityWarning))
	}
}
