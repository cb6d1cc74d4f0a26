package cachehook

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"NewsIngestor/internal/ports"
)

// Hook pokes the front-end listing endpoint so it refreshes cached posts.
type Hook struct {
	url    string
	client *http.Client
}

var _ ports.CacheInvalidator = (*Hook)(nil)

// NewHook builds a hook for url; a nil client gets the given timeout.
func NewHook(url string, client *http.Client, timeout time.Duration) *Hook {
	if client == nil {
		if timeout <= 0 {
			timeout = 3 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Hook{url: url, client: client}
}

// Invalidate issues a GET against the configured URL. An empty URL is a no-op.
func (h *Hook) Invalidate(ctx context.Context) error {
	if h.url == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("cache hook: %s", resp.Status)
	}

	return nil
}
