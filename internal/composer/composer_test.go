package composer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsIngestor/internal/config"
	"NewsIngestor/internal/domain"
)

var fixedNow = time.Date(2025, time.March, 4, 15, 30, 0, 0, time.UTC)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	c, err := New(config.Default().Composer, WithSelector(First{}), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return c
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Hello World":                "hello-world",
		"  Économie -- en crise!! ":  "conomie-en-crise",
		"Tech: AI's next step, 2025": "tech-ais-next-step-2025",
		"---":                        "",
		"a\tb\nc":                    "a-b-c",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "in=%q", in)
	}

	long := Slugify(strings.Repeat("word ", 40))
	assert.LessOrEqual(t, len(long), maxSlugBase)
	assert.False(t, strings.HasSuffix(long, "-"))
}

func TestSlugifyIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Global Report: Markets fall 3% as rates climb",
		strings.Repeat("long title segment ", 12),
		"«Quoted» — dashes – and | pipes",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once))
		assert.Regexp(t, `^[a-z0-9]+(-[a-z0-9]+)*$`, once)
	}
}

func TestUniqueSlug(t *testing.T) {
	t.Parallel()

	a := UniqueSlug("Same Title", "https://example.com/a")
	b := UniqueSlug("Same Title", "https://example.com/b")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "same-title-"))
	assert.Len(t, strings.TrimPrefix(a, "same-title-"), slugHashLen)
	assert.Equal(t, a, UniqueSlug("Same Title", "https://example.com/a"))

	onlyHash := UniqueSlug("!!!", "key")
	assert.Len(t, onlyHash, slugHashLen)
}

func TestApplyTitleTemplate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Market Update: Stocks rally", applyTitleTemplate("Market Update: {title}", "LIVE: Stocks rally"))
	assert.Equal(t, "Prefix Stocks rally", applyTitleTemplate("Prefix", "Stocks rally"))

	long := applyTitleTemplate("Breaking Down: {title} - What You Need to Know", strings.Repeat("x", 200))
	assert.Equal(t, maxTitleChars, len([]rune(long)))
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestExcerptOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short text", excerptOf("  short   text ", 200))

	got := excerptOf(strings.Repeat("alpha beta ", 40), 50)
	assert.LessOrEqual(t, len([]rune(got)), 50)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.NotContains(t, got, "alph...")
}

func TestKeyFacts(t *testing.T) {
	t.Parallel()

	text := "Short one. This sentence is comfortably longer than forty characters! " +
		"Another sufficiently long sentence follows right here? Tiny. " +
		"A third sentence that also clears the minimum length bar."

	facts := KeyFacts(text, 2, 40)
	require.Len(t, facts, 2)
	assert.Equal(t, "This sentence is comfortably longer than forty characters", facts[0])
	assert.Equal(t, "Another sufficiently long sentence follows right here", facts[1])

	assert.Nil(t, KeyFacts(text, 0, 40))
	assert.Empty(t, KeyFacts("tiny. words.", 5, 40))
}

func TestFactCheckDecisionTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want domain.FactCheckStatus
	}{
		{`"We will act," the minister said. Spending rose 4 percent.`, domain.FactVerified},
		{`"We will act," the minister told reporters.`, domain.FactMostlyTrue},
		{"A new study was released.", domain.FactMostlyTrue},
		{"Nothing notable happened today.", domain.FactUnverified},
		{`"Quoted" but no reporting verb.`, domain.FactUnverified},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Detect(tc.text).Status(), tc.text)
	}
}

func TestDetectDates(t *testing.T) {
	t.Parallel()

	assert.True(t, Detect("The accord was signed on March 4, 2025 in Geneva.").HasDates)
	assert.True(t, Detect("Talks resume Sept 12 2025.").HasDates)
	assert.False(t, Detect("Talks resume next March.").HasDates)
	assert.False(t, Detect("Meeting on 2025-03-04.").HasDates)

	// Dates never change the fact-check label.
	assert.Equal(t, domain.FactUnverified, Detect("Signed on March 4, 2025.").Status())
}

func TestImageChoice(t *testing.T) {
	t.Parallel()

	catalog := newImageCatalog(config.Default().Composer.Images)

	ai := catalog.choose(First{}, "New AI model released", domain.CategoryTechnology)
	assert.Contains(t, ai, "photo-1677442136019")

	// "said" must not match the "ai" keyword.
	plain := catalog.choose(First{}, "Minister said talks continue", domain.CategoryWorldNews)
	assert.Contains(t, plain, "photo-1504384308090")

	unknown := catalog.choose(First{}, "Something", domain.Category("sports"))
	assert.Contains(t, unknown, "photo-1588681664899")

	assert.Equal(t, "Technology innovation and digital development: Title", catalog.alt("Title", domain.CategoryTechnology))
}

func TestWithCacheBuster(t *testing.T) {
	t.Parallel()

	got := withCacheBuster("https://img.example.com/p.jpg?w=1200", fixedNow)
	assert.Contains(t, got, "w=1200")
	assert.Contains(t, got, "t=1741102200")
	assert.Empty(t, withCacheBuster("", fixedNow))
}

func TestCompose(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	src := domain.Source{Name: "BBC News", URL: "https://feeds.example.com/rss", Category: domain.CategoryBusiness}
	item := domain.FeedItem{
		Title:      "Economy grows 3%",
		Link:       "https://news.example.com/economy",
		SourceName: "BBC News",
		Category:   domain.CategoryBusiness,
	}
	body := strings.Repeat(`"Growth is strong," the minister said. Output rose 3 percent in the quarter across most regions. `, 5)
	extracted := &domain.ExtractedContent{Title: "ignored", BodyText: body, LengthChars: len(body), SourceURL: item.Link}

	got := c.Compose(src, item, extracted)

	assert.Equal(t, "Market Update: Economy grows 3%", got.Title)
	assert.Equal(t, UniqueSlug(got.Title, item.Link), got.Slug)
	assert.True(t, strings.HasPrefix(got.Slug, "market-update-economy-grows-3-"))
	assert.Equal(t, domain.FactVerified, got.FactCheckStatus)
	assert.Equal(t, domain.CategoryBusiness, got.Category)
	assert.Equal(t, item.Link, got.SourceURL)
	assert.Equal(t, "BBC News", got.SourceName)
	assert.LessOrEqual(t, len([]rune(got.Excerpt)), maxExcerptChars)
	assert.NotEmpty(t, got.KeyFacts)
	assert.Contains(t, got.ImageURL, "photo-1444653614773")
	assert.Contains(t, got.ImageURL, "t=1741102200")
	assert.True(t, strings.HasPrefix(got.ImageAlt, "Business news and economic analysis: "))

	assert.True(t, strings.HasPrefix(got.Body, "# Market Update: Economy grows 3%\n"))
	assert.Contains(t, got.Body, "recent developments reported by BBC News")
	assert.Contains(t, got.Body, "### Key Developments\n- ")
	assert.Contains(t, got.Body, "status: verified")
	assert.Contains(t, got.Body, "([original report](https://news.example.com/economy))")
	assert.Contains(t, got.Body, "*Publication Date: March 04, 2025*")
	assert.Contains(t, got.Body, "*Report Time: 03:30 PM UTC*")
	assert.Contains(t, got.Body, "*Journalist: Professional News Team*")

	again := c.Compose(src, item, extracted)
	assert.Equal(t, got, again)
}

func TestComposeFallsBackToDescription(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	src := domain.Source{Name: "NPR News", Category: domain.CategoryGeneral}
	item := domain.FeedItem{
		Title:       "Storm hits coast",
		Link:        "https://news.example.com/storm",
		Description: "<p>Heavy rain and <b>strong</b> winds battered the coast overnight.</p>",
	}

	got := c.Compose(src, item, nil)

	assert.Equal(t, "Exclusive Analysis: Storm hits coast", got.Title)
	assert.Equal(t, "Heavy rain and strong winds battered the coast overnight.", got.Excerpt)
	assert.Equal(t, domain.CategoryGeneral, got.Category)
	assert.Equal(t, "NPR News", got.SourceName)
	assert.Equal(t, domain.FactUnverified, got.FactCheckStatus)
	assert.NotContains(t, got.Body, "<b>")
}

func TestComposeDecodesDescriptionEntities(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	src := domain.Source{Name: "NPR News", Category: domain.CategoryGeneral}
	item := domain.FeedItem{
		Title:       "Concert returns",
		Link:        "https://news.example.com/concert",
		Description: "<p>Rock &amp; roll fans said &quot;wow&quot; &#39;again&#39;&nbsp;today</p>",
	}

	got := c.Compose(src, item, nil)

	assert.Equal(t, `Rock & roll fans said "wow" 'again' today`, got.Excerpt)
	assert.Equal(t, domain.FactMostlyTrue, got.FactCheckStatus)
	assert.Contains(t, got.Body, `Rock & roll fans said "wow" 'again' today`)
	assert.NotContains(t, got.Body, "&amp;")
	assert.NotContains(t, got.Body, "&quot;")

	item.Description = "<p>Turnout was up 12 percent, organisers &ldquo;thrilled&rdquo;, a spokesperson &quot;said&quot;.</p>"
	got = c.Compose(src, item, nil)
	assert.Equal(t, domain.FactVerified, got.FactCheckStatus)
}

func TestComposeRendersTimelineForDatedText(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	src := domain.Source{Name: "NPR News", Category: domain.CategoryGeneral}

	dated := c.Compose(src, domain.FeedItem{
		Title:       "Treaty signed",
		Link:        "https://news.example.com/treaty",
		Description: "<p>Leaders signed the treaty on March 4, 2025.</p>",
	}, nil)
	assert.Contains(t, dated.Body, "### Key Developments\n")
	assert.Contains(t, dated.Body, "- The reported timeline points to dated, coordinated developments")

	undated := c.Compose(src, domain.FeedItem{
		Title:       "Treaty talks",
		Link:        "https://news.example.com/talks",
		Description: "<p>Leaders met again.</p>",
	}, nil)
	assert.NotContains(t, undated.Body, "reported timeline")
	assert.NotContains(t, undated.Body, "### Key Developments")
}

func TestComposeUsesExtractedTitleWhenItemHasNone(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	got := c.Compose(
		domain.Source{Name: "TechCrunch", Category: domain.CategoryTechnology},
		domain.FeedItem{Link: "https://tc.example.com/x"},
		&domain.ExtractedContent{Title: "Chip shortage eases", BodyText: "Supply recovered."},
	)
	assert.Equal(t, "Tech Breakthrough: Chip shortage eases", got.Title)
}

func TestComposeTopic(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	topic := domain.Topic{
		Title:     "AI-Assisted Diagnosis Shows 95% Accuracy",
		Category:  domain.CategoryTechnology,
		Excerpt:   "A multi-hospital study reports high diagnostic accuracy.",
		KeyPoints: []string{"Tested across 50 hospitals", "Reduces errors by 40%"},
		Analysis:  "A tool for clinicians rather than a replacement.",
	}

	got := c.ComposeTopic(topic)

	assert.Equal(t, topic.Title, got.Title)
	assert.Equal(t, UniqueSlug(topic.Title, ""), got.Slug)
	assert.Empty(t, got.SourceURL)
	assert.Equal(t, topic.KeyPoints, got.KeyFacts)
	assert.Equal(t, domain.FactMostlyTrue, got.FactCheckStatus)
	assert.Contains(t, got.ImageURL, "photo-1677442136019")
	assert.Contains(t, got.Body, "significant technology development")
	assert.Contains(t, got.Body, "#### Professional Analysis\nA tool for clinicians rather than a replacement.")
	assert.Contains(t, got.Body, "credible established news organizations")
	assert.NotContains(t, got.Body, "original report")
}

func TestNewRejectsMissingTemplate(t *testing.T) {
	t.Parallel()

	cfg := config.Default().Composer
	cfg.BodyTemplatePath = t.TempDir() + "/missing.tmpl"
	_, err := New(cfg)
	require.Error(t, err)
}
