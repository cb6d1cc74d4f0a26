package composer

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsIngestor/internal/config"
	"NewsIngestor/internal/domain"
	"NewsIngestor/internal/extraction"
	"NewsIngestor/internal/ports"
)

const (
	maxExcerptChars = 200
	maxSummaryChars = 800
)

// Composer turns extracted text into a templated article.
type Composer struct {
	titles          map[domain.Category][]string
	fallbackTitles  []string
	images          imageCatalog
	body            *template.Template
	keyFactCount    int
	keyFactMinChars int
	byline          string
	selector        Selector
	now             func() time.Time
}

var _ ports.ArticleComposer = (*Composer)(nil)

// Option customises a Composer.
type Option func(*Composer)

// WithSelector injects the template/image selector.
func WithSelector(s Selector) Option {
	return func(c *Composer) {
		if s != nil {
			c.selector = s
		}
	}
}

// WithClock injects the time source used for dates and cache busters.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		if now != nil {
			c.now = now
		}
	}
}

// New builds a Composer from configuration. It fails only when the body
// template cannot be loaded.
func New(cfg config.ComposerConfig, opts ...Option) (*Composer, error) {
	body, err := loadBodyTemplate(cfg.BodyTemplatePath)
	if err != nil {
		return nil, err
	}

	titles := make(map[domain.Category][]string, len(cfg.TitleTemplates))
	for cat, list := range cfg.TitleTemplates {
		titles[domain.Category(cat)] = list
	}

	fallback := cfg.FallbackTitleTemplates
	if len(fallback) == 0 {
		fallback = []string{"News Analysis: " + titlePlaceholder}
	}

	c := &Composer{
		titles:          titles,
		fallbackTitles:  fallback,
		images:          newImageCatalog(cfg.Images),
		body:            body,
		keyFactCount:    cfg.KeyFactCount,
		keyFactMinChars: cfg.KeyFactMinChars,
		byline:          cfg.Byline,
		selector:        NewSeededSelector(cfg.Seed),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Compose builds an article from a feed item and, when available, its
// extracted page text. Without extracted text the feed description is used.
func (c *Composer) Compose(src domain.Source, item domain.FeedItem, extracted *domain.ExtractedContent) domain.ComposedArticle {
	category := item.Category
	if category == "" {
		category = src.Category
	}
	if category == "" {
		category = domain.CategoryGeneral
	}

	sourceName := item.SourceName
	if sourceName == "" {
		sourceName = src.Name
	}

	original := item.Title
	text := descriptionText(item.Description)
	if extracted != nil {
		if original == "" {
			original = extracted.Title
		}
		text = extracted.BodyText
	}

	title := c.title(original, category)
	facts := KeyFacts(text, c.keyFactCount, c.keyFactMinChars)
	signals := Detect(text)
	status := signals.Status()
	now := c.now()

	summary := excerptOf(text, maxSummaryChars)
	if summary == "" {
		summary = original
	}

	body := renderBody(c.body, bodyData{
		Title:           title,
		SourceName:      sourceName,
		SourceURL:       item.Link,
		CategoryLabel:   category.Label(),
		Summary:         summary,
		KeyFacts:        facts,
		FactCheckStatus: string(status),
		Dated:           signals.HasDates,
		Date:            now.Format("January 02, 2006"),
		Time:            now.UTC().Format("03:04 PM UTC"),
		Byline:          c.byline,
	})

	excerpt := excerptOf(text, maxExcerptChars)
	if excerpt == "" {
		excerpt = truncate(fmt.Sprintf("Professional analysis of %s - %s report examined with context and implications.", original, sourceName), maxExcerptChars, "...")
	}

	return domain.ComposedArticle{
		Title:           title,
		Slug:            UniqueSlug(title, item.Link),
		Excerpt:         excerpt,
		Body:            body,
		ImageURL:        withCacheBuster(c.images.choose(c.selector, original, category), now),
		ImageAlt:        c.images.alt(original, category),
		Category:        category,
		FactCheckStatus: status,
		KeyFacts:        facts,
		SourceURL:       item.Link,
		SourceName:      sourceName,
	}
}

// ComposeTopic builds an article from a static topic, without any upstream source.
func (c *Composer) ComposeTopic(topic domain.Topic) domain.ComposedArticle {
	category := topic.Category
	if category == "" {
		category = domain.CategoryGeneral
	}

	title := truncate(strings.TrimSpace(topic.Title), maxTitleChars, "...")
	text := topic.Excerpt + " " + strings.Join(topic.KeyPoints, ". ")
	signals := Detect(text)
	status := signals.Status()
	now := c.now()

	body := renderBody(c.body, bodyData{
		Title:           title,
		CategoryLabel:   category.Label(),
		Summary:         topic.Excerpt,
		KeyFacts:        topic.KeyPoints,
		Analysis:        topic.Analysis,
		FactCheckStatus: string(status),
		Dated:           signals.HasDates,
		Date:            now.Format("January 02, 2006"),
		Time:            now.UTC().Format("03:04 PM UTC"),
		Byline:          c.byline,
		Synthetic:       true,
	})

	image := topic.ImageURL
	if image == "" {
		image = c.images.choose(c.selector, title, category)
	}

	return domain.ComposedArticle{
		Title:           title,
		Slug:            UniqueSlug(title, ""),
		Excerpt:         excerptOf(topic.Excerpt, maxExcerptChars),
		Body:            body,
		ImageURL:        withCacheBuster(image, now),
		ImageAlt:        c.images.alt(title, category),
		Category:        category,
		FactCheckStatus: status,
		KeyFacts:        topic.KeyPoints,
		SourceName:      c.byline,
	}
}

func (c *Composer) title(original string, category domain.Category) string {
	templates := c.titles[category]
	if len(templates) == 0 {
		templates = c.fallbackTitles
	}
	tmpl, _ := pick(c.selector, templates)
	return applyTitleTemplate(tmpl, original)
}

// descriptionText flattens an HTML feed description to plain text with
// entities decoded.
func descriptionText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return extraction.Text(doc.Selection)
}
