// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PortfolioCategory groups portfolio projects (e.g. "Kitchens", "Bathrooms").
type PortfolioCategory struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// ImageType classifies a project image's role in the gallery.
type ImageType string

const (
	ImageTypeGallery ImageType = "gallery"
	ImageTypeBefore  ImageType = "before"
	ImageTypeAfter   ImageType = "after"
	ImageTypeCover   ImageType = "cover"
)

// ProjectImage associates a media item with a portfolio project.
// Ordering within a project is controlled by SortOrder.
type ProjectImage struct {
	ProjectID uuid.UUID `json:"project_id"`
	MediaID   uuid.UUID `json:"media_id"`
	Caption   *string   `json:"caption,omitempty"`
	SortOrder int       `json:"sort_order"`
	ImageType ImageType `json:"image_type"`
}

// PortfolioProject represents a showcased piece of work with an ordered
// image gallery.
type PortfolioProject struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Published   bool       `json:"published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Images is populated by store queries that join project_images.
	Images []ProjectImage `json:"images,omitempty"`
}
