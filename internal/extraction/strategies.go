package extraction

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Strategy names understood by DefaultRegistry.
const (
	StrategyArticle      = "article"
	StrategyStoryBody    = "story-body"
	StrategyArticleBody  = "article-body"
	StrategyArticleClass = "article-class"
	StrategyContentID    = "content-id"
	StrategyMain         = "main"
	StrategyParagraphs   = "paragraphs"
)

var skippedTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
}

// SelectorStrategy returns the text of the first element matching a CSS selector
// whose cleaned text is non-empty.
type SelectorStrategy struct {
	name     string
	selector string
}

// NewSelectorStrategy builds a named selector strategy.
func NewSelectorStrategy(name, selector string) *SelectorStrategy {
	return &SelectorStrategy{name: name, selector: selector}
}

// Name identifies the strategy inside the registry.
func (s *SelectorStrategy) Name() string {
	return s.name
}

// Extract implements Strategy.
func (s *SelectorStrategy) Extract(doc *goquery.Document) (string, bool) {
	var found string
	doc.Find(s.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		found = Text(sel)
		return found == ""
	})
	return found, found != ""
}

// ParagraphStrategy concatenates the first paragraphs longer than a threshold.
type ParagraphStrategy struct {
	minChars int
	limit    int
}

// NewParagraphStrategy builds the last-resort paragraph collector.
func NewParagraphStrategy(minChars, limit int) *ParagraphStrategy {
	return &ParagraphStrategy{minChars: minChars, limit: limit}
}

// Name identifies the strategy inside the registry.
func (p *ParagraphStrategy) Name() string {
	return StrategyParagraphs
}

// Extract implements Strategy.
func (p *ParagraphStrategy) Extract(doc *goquery.Document) (string, bool) {
	var parts []string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := Text(sel)
		if utf8.RuneCountInString(text) > p.minChars {
			parts = append(parts, text)
		}
		return p.limit <= 0 || len(parts) < p.limit
	})
	joined := strings.Join(parts, " ")
	return joined, joined != ""
}

// DefaultRegistry registers the built-in strategies.
func DefaultRegistry(paragraphMinChars, paragraphLimit int) *Registry {
	r := NewRegistry()
	r.Register(NewSelectorStrategy(StrategyArticle, "article"))
	r.Register(NewSelectorStrategy(StrategyStoryBody, `div[class*="story-body"]`))
	r.Register(NewSelectorStrategy(StrategyArticleBody, `div[class*="article-body"]`))
	r.Register(NewSelectorStrategy(StrategyArticleClass, `div[class*="article"]`))
	r.Register(NewSelectorStrategy(StrategyContentID, `div[id*="content"]`))
	r.Register(NewSelectorStrategy(StrategyMain, "main"))
	r.Register(NewParagraphStrategy(paragraphMinChars, paragraphLimit))
	return r
}

// Text returns the visible text of a selection: script-like subtrees are
// dropped, text nodes are joined by spaces and whitespace is collapsed.
func Text(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		collectText(n, &b)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if _, skip := skippedTags[n.Data]; skip {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
