// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog entry. Sizes is stored as a JSONB array in
// PostgreSQL. BasePriceCents avoids floating-point money arithmetic.
type Product struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Description     *string    `json:"description,omitempty"`
	Category        string     `json:"category"`
	Sizes           []string   `json:"sizes"`
	BasePriceCents  int64      `json:"base_price_cents"`
	FeaturedImageID *uuid.UUID `json:"featured_image_id,omitempty"`
	Published       bool       `json:"published"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
