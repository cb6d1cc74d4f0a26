package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"NewsIngestor/internal/config"
	"NewsIngestor/internal/domain"
	"NewsIngestor/internal/extraction"
	"NewsIngestor/internal/ports"
)

const (
	maxPageBytes = 5 << 20
	defaultTitle = "News Report"
)

var titleSeparators = []string{"-", "|", "–", "—", ":"}

// PageExtractor downloads article pages and pulls a plain-text excerpt.
type PageExtractor struct {
	client    *http.Client
	userAgent string
	chain     extraction.Chain
	minChars  int
	maxChars  int
	suffixes  []string
	logger    *slog.Logger
}

var _ ports.ContentExtractor = (*PageExtractor)(nil)

// NewPageExtractor wires an HTTP client; a nil client gets the configured page timeout.
func NewPageExtractor(client *http.Client, chain extraction.Chain, cfg config.ExtractionConfig, httpCfg config.HTTPConfig, logger *slog.Logger) *PageExtractor {
	if client == nil {
		timeout := httpCfg.PageTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &PageExtractor{
		client:    client,
		userAgent: httpCfg.UserAgent,
		chain:     chain,
		minChars:  cfg.MinChars,
		maxChars:  cfg.MaxChars,
		suffixes:  cfg.TitleSuffixes,
		logger:    logger,
	}
}

// Extract fetches url and applies the strategy chain. The first strategy that
// yields text wins; the result is accepted only if it exceeds the minimum length.
func (p *PageExtractor) Extract(ctx context.Context, url string) (domain.ExtractedContent, error) {
	doc, err := p.fetchDocument(ctx, url)
	if err != nil {
		return domain.ExtractedContent{}, err
	}

	text, strategy, ok := p.chain.Apply(doc)
	if !ok {
		return domain.ExtractedContent{}, fmt.Errorf("extract %s: %w", url, domain.ErrNoContent)
	}

	length := utf8.RuneCountInString(text)
	if length <= p.minChars {
		return domain.ExtractedContent{}, fmt.Errorf("extract %s: %d chars via %s: %w", url, length, strategy, domain.ErrContentTooShort)
	}

	p.debug("content extracted", "url", url, "strategy", strategy, "chars", length)

	return domain.ExtractedContent{
		Title:       cleanTitle(doc.Find("title").First().Text(), p.suffixes),
		BodyText:    truncateRunes(text, p.maxChars),
		LengthChars: length,
		SourceURL:   url,
		Strategy:    strategy,
	}, nil
}

func (p *PageExtractor) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("page %s returned %s: %w", pageURL, resp.Status, domain.ErrUnexpectedStatus)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// cleanTitle strips known trailing site names such as " - BBC News".
func cleanTitle(raw string, suffixes []string) string {
	title := strings.Join(strings.Fields(raw), " ")
	if title == "" {
		return defaultTitle
	}

	for _, suffix := range suffixes {
		suffix = strings.TrimSpace(suffix)
		if suffix == "" || len(title) <= len(suffix) {
			continue
		}
		tail := title[len(title)-len(suffix):]
		if !strings.EqualFold(tail, suffix) {
			continue
		}
		head := strings.TrimSpace(title[:len(title)-len(suffix)])
		for _, sep := range titleSeparators {
			if strings.HasSuffix(head, sep) {
				if trimmed := strings.TrimSpace(strings.TrimSuffix(head, sep)); trimmed != "" {
					title = trimmed
				}
				break
			}
		}
	}

	return title
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit]))
}

func (p *PageExtractor) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
