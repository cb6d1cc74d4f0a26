package mocks

import (
	"context"
	"sync"

	"NewsIngestor/internal/domain"
)

// MockFeedReader returns canned items per feed URL.
type MockFeedReader struct {
	Items map[string][]domain.FeedItem
	Calls int
}

func (m *MockFeedReader) Fetch(ctx context.Context, src domain.Source) []domain.FeedItem {
	m.Calls++
	return m.Items[src.URL]
}

// MockExtractor returns canned content per page URL and Err for anything else.
type MockExtractor struct {
	mu       sync.Mutex
	Pages    map[string]domain.ExtractedContent
	Err      error
	Requests []string
}

func (m *MockExtractor) Extract(ctx context.Context, url string) (domain.ExtractedContent, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, url)
	m.mu.Unlock()
	if page, ok := m.Pages[url]; ok {
		return page, nil
	}
	return domain.ExtractedContent{}, m.Err
}

// MockCacheInvalidator counts invalidation calls.
type MockCacheInvalidator struct {
	Calls int
	Err   error
}

func (m *MockCacheInvalidator) Invalidate(ctx context.Context) error {
	m.Calls++
	return m.Err
}

// MockPacer records waits without sleeping.
type MockPacer struct {
	Waits int
	Err   error
}

func (m *MockPacer) Wait(ctx context.Context) error {
	m.Waits++
	if m.Err != nil {
		return m.Err
	}
	return ctx.Err()
}
