// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus represents a review's position in the moderation queue.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review represents a customer review awaiting moderation. Only approved
// reviews appear on the public site.
type Review struct {
	ID         uuid.UUID    `json:"id"`
	AuthorName string       `json:"author_name"`
	Rating     int          `json:"rating"` // 1-5
	Content    string       `json:"content"`
	Status     ReviewStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// IsApproved returns true if the review passed moderation.
func (r *Review) IsApproved() bool {
	return r.Status == ReviewStatusApproved
}
