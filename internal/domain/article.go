package domain

import (
	"strings"
	"time"
)

// Category is the slug of a content category in the shared store.
type Category string

const (
	CategoryWorldNews  Category = "world-news"
	CategoryTechnology Category = "technology"
	CategoryBusiness   Category = "business"
	CategoryPolitics   Category = "politics"
	CategoryHealth     Category = "health"
	CategoryScience    Category = "science"
	CategoryGeneral    Category = "general"
)

// Label renders the category as plain words ("world news").
func (c Category) Label() string {
	return strings.ReplaceAll(string(c), "-", " ")
}

// FactCheckStatus is the coarse label assigned by text heuristics.
type FactCheckStatus string

const (
	FactVerified   FactCheckStatus = "verified"
	FactMostlyTrue FactCheckStatus = "mostly-true"
	FactUnverified FactCheckStatus = "unverified"
)

// PostStatus is the publication state of a stored post.
type PostStatus string

// StatusPublished is the only status the pipeline writes.
const StatusPublished PostStatus = "published"

// Source describes one configured feed.
type Source struct {
	Name     string
	URL      string
	Category Category
}

// FeedItem is a candidate entry read from a feed.
type FeedItem struct {
	Title       string
	Link        string
	Description string
	PublishedAt time.Time
	SourceName  string
	Category    Category
}

// ExtractedContent is the plain-text excerpt pulled from an article page.
type ExtractedContent struct {
	Title       string
	BodyText    string
	LengthChars int
	SourceURL   string
	Strategy    string
}

// Topic is a static entry used when composing without any upstream feed.
type Topic struct {
	Title     string
	Category  Category
	Excerpt   string
	KeyPoints []string
	Analysis  string
	ImageURL  string
}

// ComposedArticle is the templated article ready for persistence.
type ComposedArticle struct {
	Title           string
	Slug            string
	Excerpt         string
	Body            string
	ImageURL        string
	ImageAlt        string
	Category        Category
	FactCheckStatus FactCheckStatus
	KeyFacts        []string
	SourceURL       string
	SourceName      string
}

// PersistedPost is the row written to the posts table.
type PersistedPost struct {
	ID          int64
	Article     ComposedArticle
	AuthorID    int64
	CategoryID  int64
	Status      PostStatus
	ViewCount   int
	LikeCount   int
	ShareCount  int
	IsFeatured  bool
	IsTrending  bool
	PublishedAt time.Time
}

// SaveOutcome tells the caller what happened to a save attempt.
type SaveOutcome string

const (
	OutcomeCreated   SaveOutcome = "created"
	OutcomeDuplicate SaveOutcome = "duplicate"
)

// SaveResult is returned by the persistence gateway.
type SaveResult struct {
	Outcome SaveOutcome
	ID      int64
	Reason  string
}
