package sink

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"log-shipper/pkg/event"
)

// HTTPSink delivers events to an HTTP collector as a parameterized GET
// request: action and date as fixed parameters, plus one parameter per
// attribute key.
type HTTPSink struct {
	serverURL string
	client    *http.Client
}

// NewHTTPSink creates a sink for the given collector address. client
// may be nil, in which case http.DefaultClient is used.
func NewHTTPSink(serverURL string, client *http.Client) *HTTPSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSink{serverURL: serverURL, client: client}
}

// ServerURL returns the configured collector address.
func (s *HTTPSink) ServerURL() string {
	return s.serverURL
}

func (s *HTTPSink) Deliver(ctx context.Context, ev event.Event) error {
	u, err := url.Parse(s.serverURL)
	if err != nil {
		return fmt.Errorf("invalid collector address %q: %w", s.serverURL, err)
	}

	params := url.Values{}
	params.Set("action", ev.Action)
	params.Set("date", strconv.FormatInt(ev.Date, 10))
	for k, v := range ev.Attributes {
		params.Set(k, v)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build collector request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("collector request failed: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("collector rejected event: status %d", resp.StatusCode)
	}
	return nil
}

func (s *HTTPSink) Close() error {
	return nil
}
