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

// ReviewStore handles all review moderation database operations.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore with the given database connection.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

const reviewColumns = `id, author_name, rating, content, status, created_at, updated_at`

func scanReview(scanner interface{ Scan(...any) error }) (*models.Review, error) {
	var r models.Review
	err := scanner.Scan(
		&r.ID, &r.AuthorName, &r.Rating, &r.Content, &r.Status,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a new review in pending status.
func (s *ReviewStore) Create(r *models.Review) (*models.Review, error) {
	row := s.db.QueryRow(`
		INSERT INTO reviews (author_name, rating, content)
		VALUES ($1, $2, $3)
		RETURNING `+reviewColumns,
		r.AuthorName, r.Rating, r.Content,
	)
	created, err := scanReview(row)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return created, nil
}

// FindByID retrieves a review by UUID. Returns nil if not found.
func (s *ReviewStore) FindByID(id uuid.UUID) (*models.Review, error) {
	row := s.db.QueryRow(`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find review by id: %w", err)
	}
	return r, nil
}

// List returns reviews newest first with the total count, optionally
// filtered by moderation status.
func (s *ReviewStore) List(p ListParams, status models.ReviewStatus) ([]models.Review, int, error) {
	p = p.Normalize()

	base := psql.Select().From("reviews")
	if status != "" {
		base = base.Where(sq.Eq{"status": status})
	}
	if p.Search != "" {
		pattern := "%" + p.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"author_name": pattern},
			sq.ILike{"content": pattern},
		})
	}

	var total int
	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build review count: %w", err)
	}
	if err := s.db.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	listSQL, listArgs, err := base.Columns(reviewColumns).
		OrderBy("created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(p.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build review list: %w", err)
	}

	rows, err := s.db.Query(listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, *r)
	}
	return reviews, total, rows.Err()
}

// ListApproved returns approved reviews for the public site.
func (s *ReviewStore) ListApproved(limit int) ([]models.Review, error) {
	rows, err := s.db.Query(`
		SELECT `+reviewColumns+` FROM reviews
		WHERE status = 'approved'
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list approved reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, *r)
	}
	return reviews, rows.Err()
}

// SetStatus moves a review through the moderation queue. Returns nil if
// the review doesn't exist.
func (s *ReviewStore) SetStatus(id uuid.UUID, status models.ReviewStatus) (*models.Review, error) {
	row := s.db.QueryRow(`
		UPDATE reviews SET status = $1, updated_at = NOW() WHERE id = $2
		RETURNING `+reviewColumns, status, id)
	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set review status: %w", err)
	}
	return r, nil
}

// Delete removes a review by ID. Returns nil if not found.
func (s *ReviewStore) Delete(id uuid.UUID) (*models.Review, error) {
	row := s.db.QueryRow(`DELETE FROM reviews WHERE id = $1 RETURNING `+reviewColumns, id)
	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete review: %w", err)
	}
	return r, nil
}

// CountPending returns the number of reviews awaiting moderation.
func (s *ReviewStore) CountPending() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM reviews WHERE status = 'pending'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending reviews: %w", err)
	}
	return count, nil
}
