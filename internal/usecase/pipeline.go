package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"NewsIngestor/internal/domain"
	"NewsIngestor/internal/ports"
)

// Mode selects what the pipeline does when page extraction fails.
type Mode string

const (
	// ModeStrict drops items whose page could not be extracted.
	ModeStrict Mode = "strict"
	// ModeDescription composes from the feed description instead.
	ModeDescription Mode = "description"
	// ModeSynthetic skips the network and composes from static topics.
	ModeSynthetic Mode = "synthetic"
)

// ParseMode validates a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeStrict, ModeDescription, ModeSynthetic:
		return m, nil
	case "":
		return ModeStrict, nil
	default:
		return "", fmt.Errorf("unknown pipeline mode %q", s)
	}
}

// Picker chooses an index in [0, n).
type Picker interface {
	Intn(n int) int
}

// Report summarises one run.
type Report struct {
	Sources            int
	Items              int
	Created            int
	Duplicates         int
	Skipped            int
	ExtractionFailures int
	SaveFailures       int
	TotalPosts         int
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("sources", r.Sources),
		slog.Int("items", r.Items),
		slog.Int("created", r.Created),
		slog.Int("duplicates", r.Duplicates),
		slog.Int("skipped", r.Skipped),
		slog.Int("extraction_failures", r.ExtractionFailures),
		slog.Int("save_failures", r.SaveFailures),
		slog.Int("total_posts", r.TotalPosts),
	)
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Sources        []domain.Source
	Topics         []domain.Topic
	Reader         ports.FeedReader
	Extractor      ports.ContentExtractor
	Composer       ports.ArticleComposer
	Gateway        ports.PostGateway
	Repository     ports.PostRepository
	Cache          ports.CacheInvalidator
	Pacer          ports.Pacer
	Picker         Picker
	Mode           Mode
	ItemsPerFeed   int
	SyntheticCount int
	Logger         *slog.Logger
}

// Pipeline implements the feed-to-post ingestion run.
type Pipeline struct {
	sources        []domain.Source
	topics         []domain.Topic
	reader         ports.FeedReader
	extractor      ports.ContentExtractor
	composer       ports.ArticleComposer
	gateway        ports.PostGateway
	repository     ports.PostRepository
	cache          ports.CacheInvalidator
	pacer          ports.Pacer
	picker         Picker
	mode           Mode
	itemsPerFeed   int
	syntheticCount int
	logger         *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mode := deps.Mode
	if mode == "" {
		mode = ModeStrict
	}
	return &Pipeline{
		sources:        deps.Sources,
		topics:         deps.Topics,
		reader:         deps.Reader,
		extractor:      deps.Extractor,
		composer:       deps.Composer,
		gateway:        deps.Gateway,
		repository:     deps.Repository,
		cache:          deps.Cache,
		pacer:          deps.Pacer,
		picker:         deps.Picker,
		mode:           mode,
		itemsPerFeed:   deps.ItemsPerFeed,
		syntheticCount: deps.SyntheticCount,
		logger:         logger.With("component", "pipeline"),
	}
}

// Run processes every configured source once, sequentially. Per-item failures
// are counted and skipped; cancellation stops the loop between items and is
// returned alongside the partial report.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	var report Report
	p.logger.Info("run started", "mode", p.mode, "sources", len(p.sources))

	if p.mode == ModeSynthetic {
		p.runSynthetic(ctx, &report)
	} else {
		seen := make(map[string]bool)
		for _, src := range p.sources {
			if ctx.Err() != nil {
				break
			}
			p.runSource(ctx, src, seen, &report)
		}
	}

	if report.Created > 0 && p.cache != nil && ctx.Err() == nil {
		if err := p.cache.Invalidate(ctx); err != nil {
			p.logger.Debug("cache refresh failed", "error", err)
		}
	}

	if p.repository != nil && ctx.Err() == nil {
		total, err := p.repository.CountPosts(ctx)
		if err != nil {
			p.logger.Warn("count posts failed", "error", err)
		} else {
			report.TotalPosts = total
		}
	}

	p.logger.Info("run finished", "report", report)

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("run interrupted: %w", err)
	}
	return report, nil
}

func (p *Pipeline) runSource(ctx context.Context, src domain.Source, seen map[string]bool, report *Report) {
	report.Sources++
	logger := p.logger.With("source", src.Name)

	items := p.reader.Fetch(ctx, src)
	if p.itemsPerFeed > 0 && len(items) > p.itemsPerFeed {
		items = items[:p.itemsPerFeed]
	}
	logger.Info("feed fetched", "items", len(items))
	if len(items) == 0 {
		return
	}

	known := map[string]bool{}
	if p.repository != nil {
		links := make([]string, 0, len(items))
		for _, item := range items {
			links = append(links, item.Link)
		}
		var err error
		if known, err = p.repository.KnownSourceURLs(ctx, links); err != nil {
			logger.Warn("load known urls failed", "error", err)
			known = map[string]bool{}
		}
	}

	for _, item := range items {
		if ctx.Err() != nil {
			return
		}
		report.Items++

		if known[item.Link] || seen[item.Link] {
			report.Skipped++
			logger.Debug("item already stored", "link", item.Link)
			continue
		}
		seen[item.Link] = true

		var content *domain.ExtractedContent
		extracted, err := p.extractor.Extract(ctx, item.Link)
		if err != nil {
			report.ExtractionFailures++
			if p.mode != ModeDescription || strings.TrimSpace(item.Description) == "" {
				logger.Warn("extraction failed, item skipped", "link", item.Link, "error", err)
				continue
			}
			logger.Warn("extraction failed, using feed description", "link", item.Link, "error", err)
		} else {
			content = &extracted
		}

		article := p.composer.Compose(src, item, content)
		if p.save(ctx, logger, article, report) && !p.wait(ctx) {
			return
		}
	}
}

func (p *Pipeline) runSynthetic(ctx context.Context, report *Report) {
	if len(p.topics) == 0 {
		p.logger.Warn("synthetic mode without topics")
		return
	}

	count := p.syntheticCount
	if count <= 0 {
		count = 1
	}
	if count > len(p.topics) {
		count = len(p.topics)
	}

	start := 0
	if p.picker != nil {
		start = p.picker.Intn(len(p.topics))
	}

	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			return
		}
		report.Items++
		topic := p.topics[(start+i)%len(p.topics)]
		if p.save(ctx, p.logger, p.composer.ComposeTopic(topic), report) && !p.wait(ctx) {
			return
		}
	}
}

func (p *Pipeline) save(ctx context.Context, logger *slog.Logger, article domain.ComposedArticle, report *Report) bool {
	result, err := p.gateway.Save(ctx, article)
	if err != nil {
		report.SaveFailures++
		logger.Error("save failed", "slug", article.Slug, "error", err)
		return false
	}

	switch result.Outcome {
	case domain.OutcomeCreated:
		report.Created++
		logger.Info("post created", "id", result.ID, "slug", article.Slug, "title", article.Title)
		return true
	default:
		report.Duplicates++
		logger.Info("duplicate skipped", "slug", article.Slug, "reason", result.Reason)
		return false
	}
}

func (p *Pipeline) wait(ctx context.Context) bool {
	if p.pacer == nil {
		return true
	}
	return p.pacer.Wait(ctx) == nil
}
