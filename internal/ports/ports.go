package ports

import (
	"context"

	"NewsIngestor/internal/domain"
)

// FeedReader pulls candidate items from one feed. Failures yield an empty slice.
type FeedReader interface {
	Fetch(ctx context.Context, src domain.Source) []domain.FeedItem
}

// ContentExtractor downloads an article page and returns its plain-text excerpt.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (domain.ExtractedContent, error)
}

// ArticleComposer fills the article template. It never fails.
type ArticleComposer interface {
	Compose(src domain.Source, item domain.FeedItem, extracted *domain.ExtractedContent) domain.ComposedArticle
	ComposeTopic(topic domain.Topic) domain.ComposedArticle
}

// PostRepository is the driven side of the shared content store.
type PostRepository interface {
	AdminAuthorID(ctx context.Context) (int64, bool, error)
	CategoryID(ctx context.Context, slug string) (int64, bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	KnownSourceURLs(ctx context.Context, urls []string) (map[string]bool, error)
	InsertPost(ctx context.Context, post domain.PersistedPost) (int64, error)
	CountPosts(ctx context.Context) (int, error)
}

// PostGateway deduplicates and persists composed articles.
type PostGateway interface {
	Save(ctx context.Context, article domain.ComposedArticle) (domain.SaveResult, error)
}

// CacheInvalidator nudges the front-end to refresh cached listings.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Pacer inserts the politeness delay between upstream requests.
type Pacer interface {
	Wait(ctx context.Context) error
}
