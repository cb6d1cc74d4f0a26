package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"NewsIngestor/internal/domain"
	"NewsIngestor/internal/ports"
)

const maxFeedBytes = 10 << 20

// Reader fetches RSS/Atom documents and turns them into feed items.
type Reader struct {
	client    *http.Client
	parser    *gofeed.Parser
	userAgent string
	logger    *slog.Logger
}

var _ ports.FeedReader = (*Reader)(nil)

// NewReader wires an HTTP client; a nil client gets the given timeout.
func NewReader(client *http.Client, userAgent string, timeout time.Duration, logger *slog.Logger) *Reader {
	if client == nil {
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Reader{
		client:    client,
		parser:    gofeed.NewParser(),
		userAgent: userAgent,
		logger:    logger,
	}
}

// Fetch returns the items of src in document order. Any failure is logged and
// results in an empty slice.
func (r *Reader) Fetch(ctx context.Context, src domain.Source) []domain.FeedItem {
	items, err := r.fetch(ctx, src)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("feed fetch failed", "source", src.Name, "url", src.URL, "error", err)
		}
		return nil
	}
	return items
}

func (r *Reader) fetch(ctx context.Context, src domain.Source) ([]domain.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("feed returned %s: %w", resp.Status, domain.ErrUnexpectedStatus)
	}

	parsed, err := r.parser.Parse(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]domain.FeedItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if it == nil {
			continue
		}

		title := strings.TrimSpace(it.Title)
		link := strings.TrimSpace(it.Link)
		if title == "" || link == "" {
			continue
		}

		item := domain.FeedItem{
			Title:       title,
			Link:        link,
			Description: strings.TrimSpace(it.Description),
			SourceName:  src.Name,
			Category:    src.Category,
		}
		if it.PublishedParsed != nil {
			item.PublishedAt = it.PublishedParsed.UTC()
		}
		items = append(items, item)
	}

	return items, nil
}
