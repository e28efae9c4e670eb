package connectivity

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Probe answers "is the network reachable right now" on demand.
// Implementations must be safe for concurrent calls: the monitor does
// not wait for one probe to finish before firing the next.
type Probe interface {
	Check(ctx context.Context) (bool, error)
}

// HTTPProbe considers the network reachable when a HEAD request to the
// probe URL completes with any HTTP status.
type HTTPProbe struct {
	URL    string
	Client *http.Client
}

// NewHTTPProbe creates a probe against the given URL with a bounded
// request timeout so a stalled network cannot pile up probe goroutines.
func NewHTTPProbe(url string, timeout time.Duration) *HTTPProbe {
	return &HTTPProbe{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProbe) Check(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build probe request: %w", err)
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	// Any response at all means the collector host is reachable; the
	// status code is the sink's concern, not the probe's.
	return true, nil
}
