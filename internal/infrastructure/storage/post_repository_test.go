package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsIngestor/internal/config"
	"NewsIngestor/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: DriverSQLite,
		DSN:    "file:" + filepath.Join(t.TempDir(), "news.db") + "?_pragma=busy_timeout(5000)",
	}
	db, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func samplePost(slug, sourceURL string) domain.PersistedPost {
	return domain.PersistedPost{
		Article: domain.ComposedArticle{
			Title:           "Market Update: Economy grows",
			Slug:            slug,
			Excerpt:         "Growth beat forecasts.",
			Body:            "# Market Update: Economy grows\n\nBody.",
			ImageURL:        "https://img.example.com/a.jpg?t=1",
			ImageAlt:        "Business news: Economy grows",
			Category:        domain.CategoryBusiness,
			FactCheckStatus: domain.FactMostlyTrue,
			KeyFacts:        []string{"Output rose 3 percent"},
			SourceURL:       sourceURL,
			SourceName:      "BBC News",
		},
		AuthorID:   1,
		CategoryID: 1,
		Status:     domain.StatusPublished,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	require.NoError(t, db.Migrate())
	assert.Equal(t, DriverSQLite, db.Driver())
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "mysql", DSN: "x"}, nil)
	require.Error(t, err)
}

func TestLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPostRepository(openTestDB(t))

	id, found, err := repo.AdminAuthorID(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(1), id)

	id, found, err = repo.CategoryID(ctx, "technology")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Positive(t, id)

	_, found, err = repo.CategoryID(ctx, "sports")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInsertPostAndDuplicates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)
	repo := NewPostRepository(db)

	id, err := repo.InsertPost(ctx, samplePost("economy-grows-1a2b3c4d", "https://news.example.com/a"))
	require.NoError(t, err)
	assert.Positive(t, id)

	exists, err := repo.SlugExists(ctx, "economy-grows-1a2b3c4d")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.InsertPost(ctx, samplePost("economy-grows-1a2b3c4d", "https://news.example.com/other"))
	require.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = repo.InsertPost(ctx, samplePost("different-slug", "https://news.example.com/a"))
	require.ErrorIs(t, err, domain.ErrDuplicate)

	n, err := repo.CountPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var (
		status, notes, factStatus string
		views, likes, shares      int
		featured, trending        bool
		publishedAt               string
	)
	err = db.QueryRowContext(ctx, `SELECT status, fact_check_notes, fact_check_status, view_count, like_count, share_count,
		is_featured, is_trending, published_at FROM posts WHERE id = ?`, id).
		Scan(&status, &notes, &factStatus, &views, &likes, &shares, &featured, &trending, &publishedAt)
	require.NoError(t, err)
	assert.Equal(t, "published", status)
	assert.JSONEq(t, `["Output rose 3 percent"]`, notes)
	assert.Equal(t, "mostly-true", factStatus)
	assert.Zero(t, views+likes+shares)
	assert.False(t, featured)
	assert.False(t, trending)
	assert.NotEmpty(t, publishedAt)
}

func TestEmptySourceURLsDoNotCollide(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPostRepository(openTestDB(t))

	_, err := repo.InsertPost(ctx, samplePost("topic-one", ""))
	require.NoError(t, err)
	_, err = repo.InsertPost(ctx, samplePost("topic-two", ""))
	require.NoError(t, err)

	n, err := repo.CountPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestKnownSourceURLs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPostRepository(openTestDB(t))

	_, err := repo.InsertPost(ctx, samplePost("a", "https://news.example.com/a"))
	require.NoError(t, err)
	_, err = repo.InsertPost(ctx, samplePost("b", "https://news.example.com/b"))
	require.NoError(t, err)

	known, err := repo.KnownSourceURLs(ctx, []string{
		"https://news.example.com/a",
		"https://news.example.com/c",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"https://news.example.com/a": true}, known)

	empty, err := repo.KnownSourceURLs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
