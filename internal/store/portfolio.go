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

// PortfolioStore handles portfolio categories, projects, and their image
// associations.
type PortfolioStore struct {
	db *sql.DB
}

// NewPortfolioStore creates a new PortfolioStore with the given database connection.
func NewPortfolioStore(db *sql.DB) *PortfolioStore {
	return &PortfolioStore{db: db}
}

const categoryColumns = `id, name, slug, sort_order, created_at`
const projectColumns = `id, title, slug, description, category_id, author_id,
	published, created_at, updated_at`

func scanCategory(scanner interface{ Scan(...any) error }) (*models.PortfolioCategory, error) {
	var c models.PortfolioCategory
	err := scanner.Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanProject(scanner interface{ Scan(...any) error }) (*models.PortfolioProject, error) {
	var p models.PortfolioProject
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.CategoryID, &p.AuthorID,
		&p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateCategory inserts a new portfolio category.
func (s *PortfolioStore) CreateCategory(c *models.PortfolioCategory) (*models.PortfolioCategory, error) {
	row := s.db.QueryRow(`
		INSERT INTO portfolio_categories (name, slug, sort_order)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.SortOrder,
	)
	created, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// ListCategories returns all categories in sort order.
func (s *PortfolioStore) ListCategories() ([]models.PortfolioCategory, error) {
	rows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM portfolio_categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []models.PortfolioCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, *c)
	}
	return cats, rows.Err()
}

// UpdateCategory modifies a category. Returns nil if not found.
func (s *PortfolioStore) UpdateCategory(c *models.PortfolioCategory) (*models.PortfolioCategory, error) {
	row := s.db.QueryRow(`
		UPDATE portfolio_categories
		SET name = $1, slug = $2, sort_order = $3
		WHERE id = $4
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.SortOrder, c.ID,
	)
	updated, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

// DeleteCategory removes a category; projects in it keep existing with a
// NULL category. Returns nil if not found.
func (s *PortfolioStore) DeleteCategory(id uuid.UUID) (*models.PortfolioCategory, error) {
	row := s.db.QueryRow(`DELETE FROM portfolio_categories WHERE id = $1 RETURNING `+categoryColumns, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete category: %w", err)
	}
	return c, nil
}

// CreateProject inserts a new portfolio project.
func (s *PortfolioStore) CreateProject(p *models.PortfolioProject) (*models.PortfolioProject, error) {
	row := s.db.QueryRow(`
		INSERT INTO portfolio_projects (title, slug, description, category_id, author_id, published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+projectColumns,
		p.Title, p.Slug, p.Description, p.CategoryID, p.AuthorID, p.Published,
	)
	created, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

// FindProject retrieves a project with its images, ordered by sort_order.
// Returns nil if not found.
func (s *PortfolioStore) FindProject(id uuid.UUID) (*models.PortfolioProject, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM portfolio_projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}

	p.Images, err = s.projectImages(p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProjects returns projects newest first with the total count.
// categoryID filters when non-nil; published filters when non-nil.
func (s *PortfolioStore) ListProjects(p ListParams, categoryID *uuid.UUID, published *bool) ([]models.PortfolioProject, int, error) {
	p = p.Normalize()

	base := psql.Select().From("portfolio_projects")
	if categoryID != nil {
		base = base.Where(sq.Eq{"category_id": *categoryID})
	}
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
		return nil, 0, fmt.Errorf("build project count: %w", err)
	}
	if err := s.db.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	listSQL, listArgs, err := base.Columns(projectColumns).
		OrderBy("created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(p.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build project list: %w", err)
	}

	rows, err := s.db.Query(listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.PortfolioProject
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// Listings carry images too: the public portfolio page picks its
	// cover image from them.
	for i := range projects {
		projects[i].Images, err = s.projectImages(projects[i].ID)
		if err != nil {
			return nil, 0, err
		}
	}
	return projects, total, nil
}

// UpdateProject modifies a project's fields. Returns nil if not found.
func (s *PortfolioStore) UpdateProject(p *models.PortfolioProject) (*models.PortfolioProject, error) {
	row := s.db.QueryRow(`
		UPDATE portfolio_projects
		SET title = $1, slug = $2, description = $3, category_id = $4,
			published = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+projectColumns,
		p.Title, p.Slug, p.Description, p.CategoryID, p.Published, p.ID,
	)
	updated, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return updated, nil
}

// ReplaceImages swaps a project's image associations wholesale inside a
// transaction. Images keep the order and metadata given.
func (s *PortfolioStore) ReplaceImages(projectID uuid.UUID, images []models.ProjectImage) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("replace images: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM project_images WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("clear project images: %w", err)
	}

	for _, img := range images {
		_, err := tx.Exec(`
			INSERT INTO project_images (project_id, media_id, caption, sort_order, image_type)
			VALUES ($1, $2, $3, $4, $5)
		`, projectID, img.MediaID, img.Caption, img.SortOrder, img.ImageType)
		if err != nil {
			return fmt.Errorf("insert project image: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteProject removes a project; its image associations cascade.
// Returns nil if not found.
func (s *PortfolioStore) DeleteProject(id uuid.UUID) (*models.PortfolioProject, error) {
	row := s.db.QueryRow(`DELETE FROM portfolio_projects WHERE id = $1 RETURNING `+projectColumns, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete project: %w", err)
	}
	return p, nil
}

// CountProjects returns the total number of portfolio projects.
func (s *PortfolioStore) CountProjects() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM portfolio_projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}

// projectImages loads a project's images ordered by sort_order.
func (s *PortfolioStore) projectImages(projectID uuid.UUID) ([]models.ProjectImage, error) {
	rows, err := s.db.Query(`
		SELECT project_id, media_id, caption, sort_order, image_type
		FROM project_images
		WHERE project_id = $1
		ORDER BY sort_order ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project images: %w", err)
	}
	defer rows.Close()

	var images []models.ProjectImage
	for rows.Next() {
		var img models.ProjectImage
		if err := rows.Scan(&img.ProjectID, &img.MediaID, &img.Caption, &img.SortOrder, &img.ImageType); err != nil {
			return nil, fmt.Errorf("scan project image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
