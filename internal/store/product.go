// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"craftpress/internal/models"
)

// ProductStore handles product catalog database operations. Sizes are
// stored as a JSONB array and marshalled at the store boundary.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, slug, description, category, sizes,
	base_price_cents, featured_image_id, published, created_at, updated_at`

func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	var sizes []byte
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Category, &sizes,
		&p.BasePriceCents, &p.FeaturedImageID, &p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sizes, &p.Sizes); err != nil {
		return nil, fmt.Errorf("decode product sizes: %w", err)
	}
	return &p, nil
}

func encodeSizes(sizes []string) ([]byte, error) {
	if sizes == nil {
		sizes = []string{}
	}
	return json.Marshal(sizes)
}

// Create inserts a new product.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	sizes, err := encodeSizes(p.Sizes)
	if err != nil {
		return nil, fmt.Errorf("encode product sizes: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO products (name, slug, description, category, sizes,
			base_price_cents, featured_image_id, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		p.Name, p.Slug, p.Description, p.Category, sizes,
		p.BasePriceCents, p.FeaturedImageID, p.Published,
	)
	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

// FindByID retrieves a product by UUID. Returns nil if not found.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a product by slug. Returns nil if not found.
func (s *ProductStore) FindBySlug(slug string) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}

// List returns products newest first with the total count. category
// filters when non-empty; search matches name and slug.
func (s *ProductStore) List(p ListParams, category string) ([]models.Product, int, error) {
	p = p.Normalize()

	base := psql.Select().From("products")
	if category != "" {
		base = base.Where(sq.Eq{"category": category})
	}
	if p.Search != "" {
		pattern := "%" + p.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"slug": pattern},
		})
	}

	var total int
	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build product count: %w", err)
	}
	if err := s.db.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	listSQL, listArgs, err := base.Columns(productColumns).
		OrderBy("created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(p.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build product list: %w", err)
	}

	rows, err := s.db.Query(listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		prod, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *prod)
	}
	return products, total, rows.Err()
}

// ListPublished returns published products for the public catalog page.
func (s *ProductStore) ListPublished() ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT ` + productColumns + ` FROM products
		WHERE published
		ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list published products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Update modifies a product's editable fields. Returns nil if not found.
func (s *ProductStore) Update(p *models.Product) (*models.Product, error) {
	sizes, err := encodeSizes(p.Sizes)
	if err != nil {
		return nil, fmt.Errorf("encode product sizes: %w", err)
	}

	row := s.db.QueryRow(`
		UPDATE products
		SET name = $1, slug = $2, description = $3, category = $4, sizes = $5,
			base_price_cents = $6, featured_image_id = $7, published = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING `+productColumns,
		p.Name, p.Slug, p.Description, p.Category, sizes,
		p.BasePriceCents, p.FeaturedImageID, p.Published, p.ID,
	)
	updated, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

// Delete removes a product by ID. Returns nil if not found.
func (s *ProductStore) Delete(id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRow(`DELETE FROM products WHERE id = $1 RETURNING `+productColumns, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return p, nil
}

// Count returns the total number of products.
func (s *ProductStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}
