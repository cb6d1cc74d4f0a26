package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"NewsIngestor/internal/composer"
	"NewsIngestor/internal/config"
	"NewsIngestor/internal/domain"
	"NewsIngestor/internal/extraction"
	"NewsIngestor/internal/infrastructure/cachehook"
	"NewsIngestor/internal/infrastructure/feed"
	"NewsIngestor/internal/infrastructure/parser"
	"NewsIngestor/internal/infrastructure/scheduler"
	"NewsIngestor/internal/infrastructure/storage"
	"NewsIngestor/internal/logging"
	"NewsIngestor/internal/usecase"
)

// Application wires configs to use cases and owns the store connection.
type Application struct {
	cfg      config.Config
	db       *storage.DB
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// New opens the store and builds the pipeline. Store connection and migration
// failures are returned; everything after this point is skip-and-continue.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	mode, err := usecase.ParseMode(cfg.Pipeline.Mode)
	if err != nil {
		return nil, err
	}

	chain, err := extraction.DefaultRegistry(cfg.Extraction.ParagraphMinChars, cfg.Extraction.ParagraphLimit).
		Chain(cfg.Extraction.Strategies)
	if err != nil {
		return nil, fmt.Errorf("build extraction chain: %w", err)
	}

	selector := composer.NewSeededSelector(cfg.Composer.Seed)
	comp, err := composer.New(cfg.Composer, composer.WithSelector(selector))
	if err != nil {
		return nil, fmt.Errorf("build composer: %w", err)
	}

	db, err := storage.Open(ctx, cfg.Database, baseLogger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate store: %w", err)
		}
	}

	repo := storage.NewPostRepository(db)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Sources:   Sources(cfg.Sources),
		Topics:    Topics(cfg.Composer.Topics),
		Reader:    feed.NewReader(nil, cfg.HTTP.UserAgent, cfg.HTTP.FeedTimeout, baseLogger.With("component", "feed")),
		Extractor: parser.NewPageExtractor(nil, chain, cfg.Extraction, cfg.HTTP, baseLogger.With("component", "extractor")),
		Composer:  comp,
		Gateway: usecase.NewPersistenceGateway(usecase.GatewayDeps{
			Repository:        repo,
			DefaultAuthorID:   cfg.Database.DefaultAuthorID,
			DefaultCategoryID: cfg.Database.DefaultCategoryID,
			Logger:            baseLogger.With("component", "gateway"),
		}),
		Repository:     repo,
		Cache:          cachehook.NewHook(cfg.CacheHook.URL, nil, cfg.CacheHook.Timeout),
		Pacer:          scheduler.NewPacer(cfg.Pipeline.PolitenessDelay),
		Picker:         selector,
		Mode:           mode,
		ItemsPerFeed:   cfg.Pipeline.ItemsPerFeed,
		SyntheticCount: cfg.Pipeline.SyntheticCount,
		Logger:         baseLogger,
	})

	return &Application{cfg: cfg, db: db, pipeline: pipeline, logger: baseLogger}, nil
}

// Migrate opens the store, applies the bundled schema once and closes it,
// without building the pipeline.
func Migrate(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) error {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(ctx, cfg.Database, baseLogger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	return nil
}

// Run performs a single ingestion pass.
func (a *Application) Run(ctx context.Context) (usecase.Report, error) {
	return a.pipeline.Run(ctx)
}

// Close releases the store connection.
func (a *Application) Close() error {
	return a.db.Close()
}

// Sources converts configured feeds, dropping entries without a URL.
func Sources(cfgs []config.SourceConfig) []domain.Source {
	out := make([]domain.Source, 0, len(cfgs))
	for _, c := range cfgs {
		if strings.TrimSpace(c.URL) == "" {
			continue
		}
		category := domain.Category(c.Category)
		if category == "" {
			category = domain.CategoryGeneral
		}
		out = append(out, domain.Source{Name: c.Name, URL: c.URL, Category: category})
	}
	return out
}

// Topics converts the configured static topics.
func Topics(cfgs []config.TopicConfig) []domain.Topic {
	out := make([]domain.Topic, 0, len(cfgs))
	for _, c := range cfgs {
		if strings.TrimSpace(c.Title) == "" {
			continue
		}
		out = append(out, domain.Topic{
			Title:     c.Title,
			Category:  domain.Category(c.Category),
			Excerpt:   c.Excerpt,
			KeyPoints: c.KeyPoints,
			Analysis:  c.Analysis,
			ImageURL:  c.Image,
		})
	}
	return out
}
