// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"craftpress/internal/models"
)

// PostStore handles all blog post database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, slug, body, excerpt, published, published_at,
	author_id, featured_image_id, created_at, updated_at`

func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Body, &p.Excerpt, &p.Published,
		&p.PublishedAt, &p.AuthorID, &p.FeaturedImageID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new post. PublishedAt is set when the post is created
// already published.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		INSERT INTO posts (title, slug, body, excerpt, published, published_at,
			author_id, featured_image_id)
		VALUES ($1, $2, $3, $4, $5, CASE WHEN $5 THEN NOW() END, $6, $7)
		RETURNING `+postColumns,
		p.Title, p.Slug, p.Body, p.Excerpt, p.Published, p.AuthorID, p.FeaturedImageID,
	)
	created, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

// FindByID retrieves a post by UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by slug. Returns nil if not found.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// List returns posts matching the given filters, newest first, with the
// total match count for pagination. published filters by publish state
// when non-nil; search matches title and slug case-insensitively.
func (s *PostStore) List(p ListParams, published *bool) ([]models.Post, int, error) {
	p = p.Normalize()

	base := psql.Select().From("posts")
	if published != nil {
		base = base.Where(sq.Eq{"published": *published})
	}
	if p.Search != "" {
		pattern := "%" + p.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"slug": pattern},
		})
	}

	var total int
	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build post count: %w", err)
	}
	if err := s.db.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	listSQL, listArgs, err := base.Columns(postColumns).
		OrderBy("created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(p.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build post list: %w", err)
	}

	rows, err := s.db.Query(listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, total, rows.Err()
}

// ListPublished returns published posts newest first, for the public blog.
func (s *PostStore) ListPublished(limit int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		WHERE published
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// Update modifies a post's editable fields. The first transition to
// published stamps published_at; unpublishing preserves it.
func (s *PostStore) Update(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		UPDATE posts
		SET title = $1, slug = $2, body = $3, excerpt = $4, published = $5,
			published_at = CASE WHEN $5 AND published_at IS NULL THEN NOW() ELSE published_at END,
			author_id = $6, featured_image_id = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+postColumns,
		p.Title, p.Slug, p.Body, p.Excerpt, p.Published, p.AuthorID, p.FeaturedImageID, p.ID,
	)
	updated, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

// SetPublished flips the publish flag for one post, stamping published_at
// on the first publish. Returns nil if the post doesn't exist.
func (s *PostStore) SetPublished(id uuid.UUID, published bool) (*models.Post, error) {
	row := s.db.QueryRow(`
		UPDATE posts
		SET published = $1,
			published_at = CASE WHEN $1 AND published_at IS NULL THEN NOW() ELSE published_at END,
			updated_at = NOW()
		WHERE id = $2
		RETURNING `+postColumns,
		published, id,
	)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set post published: %w", err)
	}
	return p, nil
}

// Delete removes a post by ID. Returns nil if not found.
func (s *PostStore) Delete(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`DELETE FROM posts WHERE id = $1 RETURNING `+postColumns, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}
	return p, nil
}

// Count returns post totals: all posts and published posts.
func (s *PostStore) Count() (total, published int, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COUNT(*) FILTER (WHERE published) FROM posts
	`).Scan(&total, &published)
	if err != nil {
		return 0, 0, fmt.Errorf("count posts: %w", err)
	}
	return total, published, nil
}
