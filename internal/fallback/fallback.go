// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fallback provides static content used by the public site when
// the database is unreachable. Marketing pages degrade to this data instead
// of failing the render.
package fallback

import "craftpress/internal/models"

func strptr(s string) *string { return &s }

// Products is the static product catalog shown when the database is down.
var Products = []models.Product{
	{
		Name:           "Classic Tee",
		Slug:           "classic-tee",
		Description:    strptr("Heavyweight cotton tee with the studio logo."),
		Category:       "apparel",
		Sizes:          []string{"S", "M", "L", "XL"},
		BasePriceCents: 2500,
		Published:      true,
	},
	{
		Name:           "Studio Mug",
		Slug:           "studio-mug",
		Description:    strptr("Ceramic 350ml mug, dishwasher safe."),
		Category:       "accessories",
		Sizes:          []string{"350ml"},
		BasePriceCents: 1400,
		Published:      true,
	},
	{
		Name:           "Print Bundle",
		Slug:           "print-bundle",
		Description:    strptr("Three A3 prints from the current collection."),
		Category:       "prints",
		Sizes:          []string{"A3"},
		BasePriceCents: 4900,
		Published:      true,
	},
}

// Posts is the static blog listing shown when the database is down.
var Posts = []models.Post{
	{
		Title:     "Welcome to the studio",
		Slug:      "welcome-to-the-studio",
		Excerpt:   strptr("A short introduction to who we are and what we make."),
		Body:      "We are a small studio making things we love.",
		Published: true,
	},
}
