package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"NewsIngestor/internal/domain"
	"NewsIngestor/internal/ports"
)

// PostRepository reads lookups from and appends posts to the content store.
type PostRepository struct {
	db *DB
}

var _ ports.PostRepository = (*PostRepository)(nil)

// NewPostRepository wires an open store.
func NewPostRepository(db *DB) *PostRepository {
	return &PostRepository{db: db}
}

// AdminAuthorID returns the lowest id among users with the admin role.
func (r *PostRepository) AdminAuthorID(ctx context.Context) (int64, bool, error) {
	query := r.db.builder.Select("id").From("users").
		Where(sq.Eq{"role": "admin"}).
		OrderBy("id").
		Limit(1)
	return r.lookupID(ctx, query, "admin author")
}

// CategoryID returns the id of the category with the given slug.
func (r *PostRepository) CategoryID(ctx context.Context, slug string) (int64, bool, error) {
	query := r.db.builder.Select("id").From("categories").
		Where(sq.Eq{"slug": slug}).
		Limit(1)
	return r.lookupID(ctx, query, "category "+slug)
}

// SlugExists reports whether a post already uses slug.
func (r *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query := r.db.builder.Select("1").From("posts").
		Where(sq.Eq{"slug": slug}).
		Limit(1)
	_, found, err := r.lookupID(ctx, query, "slug "+slug)
	return found, err
}

// KnownSourceURLs returns the subset of urls already stored as source_url.
func (r *PostRepository) KnownSourceURLs(ctx context.Context, urls []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(urls) == 0 {
		return result, nil
	}

	stmt, args, err := r.db.builder.Select("source_url").From("posts").
		Where(sq.Eq{"source_url": urls}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build known urls query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query known urls: %w", err)
	}

	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan url: %w", err)
		}
		result[url] = true
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// InsertPost appends a post. A uniqueness conflict on slug or source_url
// yields domain.ErrDuplicate and leaves the table untouched.
func (r *PostRepository) InsertPost(ctx context.Context, post domain.PersistedPost) (int64, error) {
	article := post.Article

	notes, err := json.Marshal(article.KeyFacts)
	if err != nil {
		return 0, fmt.Errorf("encode key facts: %w", err)
	}
	if article.KeyFacts == nil {
		notes = []byte("[]")
	}

	sourceURL := sql.NullString{String: article.SourceURL, Valid: article.SourceURL != ""}

	stmt, args, err := r.db.builder.Insert("posts").
		Columns(
			"title", "slug", "excerpt", "content", "author_id", "category_id", "status",
			"featured_image", "image_caption", "source_url", "source_name",
			"fact_check_status", "fact_check_notes",
			"view_count", "like_count", "share_count", "is_featured", "is_trending",
			"published_at",
		).
		Values(
			article.Title, article.Slug, article.Excerpt, article.Body, post.AuthorID, post.CategoryID, string(post.Status),
			article.ImageURL, article.ImageAlt, sourceURL, article.SourceName,
			string(article.FactCheckStatus), string(notes),
			post.ViewCount, post.LikeCount, post.ShareCount, post.IsFeatured, post.IsTrending,
			sq.Expr("CURRENT_TIMESTAMP"),
		).
		Suffix("ON CONFLICT DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("insert %s: %w", article.Slug, domain.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert %s: %w", article.Slug, err)
	}

	return id, nil
}

// CountPosts returns the number of stored posts.
func (r *PostRepository) CountPosts(ctx context.Context) (int, error) {
	stmt, args, err := r.db.builder.Select("COUNT(*)").From("posts").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func (r *PostRepository) lookupID(ctx context.Context, query sq.SelectBuilder, what string) (int64, bool, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("build %s lookup: %w", what, err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("lookup %s: %w", what, err)
	}
	return id, true, nil
}
