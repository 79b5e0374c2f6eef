// Package source retrieves the raw estimate payload from the configured
// upstream. Transport failures are labeled with ErrFetch so callers can
// distinguish them from payload-shape problems.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ErrFetch indicates a transport-level failure retrieving the payload.
var ErrFetch = errors.New("estimate payload fetch failed")

// Client supplies the raw estimate payload. A failed fetch never yields a
// partial payload.
type Client interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPClient fetches the payload from an upstream URL.
type HTTPClient struct {
	URL     string
	Timeout time.Duration
	HTTP    *http.Client
}

// Fetch performs a single GET against the configured URL. There is no
// retry; the caller surfaces the failure as a blocking error state.
func (c HTTPClient) Fetch(ctx context.Context) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}
	return body, nil
}

// FileClient reads the payload from a static file, useful for local
// development and the render tool.
type FileClient struct {
	Path string
}

// Fetch reads the configured file.
func (c FileClient) Fetch(_ context.Context) ([]byte, error) {
	body, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return body, nil
}
