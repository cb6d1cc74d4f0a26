package mocks

import (
	"context"
	"sync"

	"NewsIngestor/internal/domain"
)

// MockPostRepository is an in-memory implementation of ports.PostRepository
// that enforces slug and source URL uniqueness like the real store.
type MockPostRepository struct {
	mu sync.Mutex

	Posts        []domain.PersistedPost
	AdminID      int64
	HasAdmin     bool
	Categories   map[string]int64
	LookupError  error
	InsertError  error
	InsertCalls  int
	KnownURLsErr error
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		AdminID:    1,
		HasAdmin:   true,
		Categories: map[string]int64{"general": 1},
	}
}

func (m *MockPostRepository) AdminAuthorID(ctx context.Context) (int64, bool, error) {
	if m.LookupError != nil {
		return 0, false, m.LookupError
	}
	return m.AdminID, m.HasAdmin, nil
}

func (m *MockPostRepository) CategoryID(ctx context.Context, slug string) (int64, bool, error) {
	if m.LookupError != nil {
		return 0, false, m.LookupError
	}
	id, ok := m.Categories[slug]
	return id, ok, nil
}

func (m *MockPostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Posts {
		if p.Article.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPostRepository) KnownSourceURLs(ctx context.Context, urls []string) (map[string]bool, error) {
	if m.KnownURLsErr != nil {
		return nil, m.KnownURLsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	known := make(map[string]bool)
	for _, u := range urls {
		for _, p := range m.Posts {
			if u != "" && p.Article.SourceURL == u {
				known[u] = true
			}
		}
	}
	return known, nil
}

func (m *MockPostRepository) InsertPost(ctx context.Context, post domain.PersistedPost) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls++
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	for _, p := range m.Posts {
		if p.Article.Slug == post.Article.Slug ||
			(post.Article.SourceURL != "" && p.Article.SourceURL == post.Article.SourceURL) {
			return 0, domain.ErrDuplicate
		}
	}
	post.ID = int64(len(m.Posts) + 1)
	m.Posts = append(m.Posts, post)
	return post.ID, nil
}

func (m *MockPostRepository) CountPosts(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Posts), nil
}
