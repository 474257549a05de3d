// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"craftpress/internal/models"
)

// AuthorStore handles all author-related database operations.
type AuthorStore struct {
	db *sql.DB
}

// NewAuthorStore creates a new AuthorStore with the given database connection.
func NewAuthorStore(db *sql.DB) *AuthorStore {
	return &AuthorStore{db: db}
}

const authorColumns = `id, name, slug, bio, avatar_id, is_default, created_at, updated_at`

func scanAuthor(scanner interface{ Scan(...any) error }) (*models.Author, error) {
	var a models.Author
	err := scanner.Scan(
		&a.ID, &a.Name, &a.Slug, &a.Bio, &a.AvatarID, &a.IsDefault,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new author and returns it with the generated ID.
func (s *AuthorStore) Create(a *models.Author) (*models.Author, error) {
	row := s.db.QueryRow(`
		INSERT INTO authors (name, slug, bio, avatar_id, is_default)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+authorColumns,
		a.Name, a.Slug, a.Bio, a.AvatarID, a.IsDefault,
	)
	created, err := scanAuthor(row)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return created, nil
}

// FindByID retrieves an author by UUID. Returns nil if not found.
func (s *AuthorStore) FindByID(id uuid.UUID) (*models.Author, error) {
	row := s.db.QueryRow(`SELECT `+authorColumns+` FROM authors WHERE id = $1`, id)
	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find author by id: %w", err)
	}
	return a, nil
}

// FindDefault retrieves the default author. Returns nil if none is flagged.
func (s *AuthorStore) FindDefault() (*models.Author, error) {
	row := s.db.QueryRow(`SELECT ` + authorColumns + ` FROM authors WHERE is_default LIMIT 1`)
	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find default author: %w", err)
	}
	return a, nil
}

// List returns all authors ordered by creation date.
func (s *AuthorStore) List() ([]models.Author, error) {
	rows, err := s.db.Query(`SELECT ` + authorColumns + ` FROM authors ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var authors []models.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	return authors, rows.Err()
}

// Count returns the total number of authors.
func (s *AuthorStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM authors`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count authors: %w", err)
	}
	return count, nil
}

// Update modifies an author's editable fields.
func (s *AuthorStore) Update(a *models.Author) (*models.Author, error) {
	row := s.db.QueryRow(`
		UPDATE authors
		SET name = $1, slug = $2, bio = $3, avatar_id = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+authorColumns,
		a.Name, a.Slug, a.Bio, a.AvatarID, a.ID,
	)
	updated, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}
	return updated, nil
}

// SetDefault flags one author as default and clears the flag everywhere
// else, keeping the exactly-one-default invariant inside a transaction.
func (s *AuthorStore) SetDefault(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("set default author: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE authors SET is_default = FALSE WHERE is_default`); err != nil {
		return fmt.Errorf("clear default author: %w", err)
	}
	res, err := tx.Exec(`UPDATE authors SET is_default = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("set default author: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

// DeleteAndReassign removes an author after moving their posts and
// portfolio projects to the given replacement. If promote is true the
// replacement also becomes the default author. All inside one transaction
// so a failure leaves nothing half-moved.
func (s *AuthorStore) DeleteAndReassign(id, replacementID uuid.UUID, promote bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE posts SET author_id = $1 WHERE author_id = $2`, replacementID, id); err != nil {
		return fmt.Errorf("reassign posts: %w", err)
	}
	if _, err := tx.Exec(`UPDATE portfolio_projects SET author_id = $1 WHERE author_id = $2`, replacementID, id); err != nil {
		return fmt.Errorf("reassign projects: %w", err)
	}
	if promote {
		if _, err := tx.Exec(`UPDATE authors SET is_default = TRUE, updated_at = NOW() WHERE id = $1`, replacementID); err != nil {
			return fmt.Errorf("promote author: %w", err)
		}
	}
	res, err := tx.Exec(`DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

// OldestExcept returns the oldest author other than the excluded one.
// Used to pick the promotion candidate when the default author is deleted.
func (s *AuthorStore) OldestExcept(exclude uuid.UUID) (*models.Author, error) {
	row := s.db.QueryRow(`
		SELECT `+authorColumns+` FROM authors
		WHERE id <> $1
		ORDER BY created_at ASC
		LIMIT 1
	`, exclude)
	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("oldest author: %w", err)
	}
	return a, nil
}
