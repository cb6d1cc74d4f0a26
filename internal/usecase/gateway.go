package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"NewsIngestor/internal/domain"
	"NewsIngestor/internal/ports"
)

// GatewayDeps wires the persistence gateway.
type GatewayDeps struct {
	Repository        ports.PostRepository
	DefaultAuthorID   int64
	DefaultCategoryID int64
	Logger            *slog.Logger
}

// PersistenceGateway resolves foreign keys, rejects duplicates and appends posts.
type PersistenceGateway struct {
	repository        ports.PostRepository
	defaultAuthorID   int64
	defaultCategoryID int64
	logger            *slog.Logger
}

var _ ports.PostGateway = (*PersistenceGateway)(nil)

// NewPersistenceGateway constructs the gateway.
func NewPersistenceGateway(deps GatewayDeps) *PersistenceGateway {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PersistenceGateway{
		repository:        deps.Repository,
		defaultAuthorID:   deps.DefaultAuthorID,
		defaultCategoryID: deps.DefaultCategoryID,
		logger:            logger,
	}
}

// Save stores article as a published post. Duplicates are reported through
// the outcome, not as an error.
func (g *PersistenceGateway) Save(ctx context.Context, article domain.ComposedArticle) (domain.SaveResult, error) {
	exists, err := g.repository.SlugExists(ctx, article.Slug)
	if err != nil {
		return domain.SaveResult{}, fmt.Errorf("check slug %s: %w", article.Slug, err)
	}
	if exists {
		return domain.SaveResult{Outcome: domain.OutcomeDuplicate, Reason: "slug exists"}, nil
	}

	if article.SourceURL != "" {
		known, err := g.repository.KnownSourceURLs(ctx, []string{article.SourceURL})
		if err != nil {
			return domain.SaveResult{}, fmt.Errorf("check source url: %w", err)
		}
		if known[article.SourceURL] {
			return domain.SaveResult{Outcome: domain.OutcomeDuplicate, Reason: "source url exists"}, nil
		}
	}

	authorID := g.resolve(ctx, "author", g.defaultAuthorID, g.repository.AdminAuthorID)
	categoryID := g.resolve(ctx, "category", g.defaultCategoryID, func(ctx context.Context) (int64, bool, error) {
		return g.repository.CategoryID(ctx, string(article.Category))
	})

	id, err := g.repository.InsertPost(ctx, domain.PersistedPost{
		Article:    article,
		AuthorID:   authorID,
		CategoryID: categoryID,
		Status:     domain.StatusPublished,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.SaveResult{Outcome: domain.OutcomeDuplicate, Reason: "unique constraint"}, nil
		}
		return domain.SaveResult{}, fmt.Errorf("save %s: %w", article.Slug, err)
	}

	return domain.SaveResult{Outcome: domain.OutcomeCreated, ID: id}, nil
}

// resolve runs a lookup and falls back to def when nothing is found or the lookup fails.
func (g *PersistenceGateway) resolve(ctx context.Context, what string, def int64, lookup func(context.Context) (int64, bool, error)) int64 {
	id, found, err := lookup(ctx)
	if err != nil {
		g.logger.Warn("lookup failed, using default", "what", what, "default", def, "error", err)
		return def
	}
	if !found {
		return def
	}
	return id
}
