package sink

import (
	"context"

	"log-shipper/pkg/event"
)

// Sink is the remote collector boundary. A Deliver error means the
// event was not accepted and the caller should retry it later; no
// further detail is interpreted.
type Sink interface {
	Deliver(ctx context.Context, ev event.Event) error
	Close() error
}
