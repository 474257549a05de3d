// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriberStatus represents a newsletter subscriber's delivery state.
type SubscriberStatus string

const (
	SubscriberActive       SubscriberStatus = "active"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
	SubscriberBounced      SubscriberStatus = "bounced"
)

// ValidSubscriberStatus reports whether s is a known subscriber status.
func ValidSubscriberStatus(s SubscriberStatus) bool {
	switch s {
	case SubscriberActive, SubscriberUnsubscribed, SubscriberBounced:
		return true
	}
	return false
}

// NewsletterSubscriber represents a newsletter list entry. Email addresses
// are unique; re-subscribing an unsubscribed address flips it back to active.
type NewsletterSubscriber struct {
	ID        uuid.UUID        `json:"id"`
	Email     string           `json:"email"`
	Status    SubscriberStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
