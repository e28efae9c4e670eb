package relay

import (
	"context"

	"github.com/nbd-wtf/go-nostr"
)

// Relay is the publish-side interface to a nostr relay. The shipper
// only ever writes, so the query/subscribe surface is deliberately
// absent. Note: *nostr.Relay implements this interface directly, so no
// wrapper is needed, and tests can substitute a mock.
type Relay interface {
	Publish(ctx context.Context, event nostr.Event) error
	Close() error
}
