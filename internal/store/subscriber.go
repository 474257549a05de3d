// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"craftpress/internal/models"
)

// normalizeEmail makes addresses canonical before they touch the UNIQUE
// column, so every caller (admin API, public forms) agrees on identity.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SubscriberStore handles newsletter subscriber database operations.
type SubscriberStore struct {
	db *sql.DB
}

// NewSubscriberStore creates a new SubscriberStore with the given database connection.
func NewSubscriberStore(db *sql.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

const subscriberColumns = `id, email, status, created_at, updated_at`

func scanSubscriber(scanner interface{ Scan(...any) error }) (*models.NewsletterSubscriber, error) {
	var n models.NewsletterSubscriber
	err := scanner.Scan(&n.ID, &n.Email, &n.Status, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Subscribe upserts an email onto the list. A brand-new address is created
// active; a previously unsubscribed or bounced one is reactivated.
func (s *SubscriberStore) Subscribe(email string) (*models.NewsletterSubscriber, error) {
	row := s.db.QueryRow(`
		INSERT INTO newsletter_subscribers (email)
		VALUES ($1)
		ON CONFLICT (email)
		DO UPDATE SET status = 'active', updated_at = NOW()
		RETURNING `+subscriberColumns, normalizeEmail(email))
	n, err := scanSubscriber(row)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return n, nil
}

// FindByID retrieves a subscriber by UUID. Returns nil if not found.
func (s *SubscriberStore) FindByID(id uuid.UUID) (*models.NewsletterSubscriber, error) {
	row := s.db.QueryRow(`SELECT `+subscriberColumns+` FROM newsletter_subscribers WHERE id = $1`, id)
	n, err := scanSubscriber(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subscriber by id: %w", err)
	}
	return n, nil
}

// FindByEmail retrieves a subscriber by email. Returns nil if not found.
func (s *SubscriberStore) FindByEmail(email string) (*models.NewsletterSubscriber, error) {
	row := s.db.QueryRow(`SELECT `+subscriberColumns+` FROM newsletter_subscribers WHERE email = $1`, normalizeEmail(email))
	n, err := scanSubscriber(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subscriber by email: %w", err)
	}
	return n, nil
}

// List returns subscribers newest first with the total count, optionally
// filtered by status. Status changes are visible to the next List call
// immediately; there is no caching layer here.
func (s *SubscriberStore) List(p ListParams, status models.SubscriberStatus) ([]models.NewsletterSubscriber, int, error) {
	p = p.Normalize()

	base := psql.Select().From("newsletter_subscribers")
	if status != "" {
		base = base.Where(sq.Eq{"status": status})
	}
	if p.Search != "" {
		base = base.Where(sq.ILike{"email": "%" + p.Search + "%"})
	}

	var total int
	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build subscriber count: %w", err)
	}
	if err := s.db.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count subscribers: %w", err)
	}

	listSQL, listArgs, err := base.Columns(subscriberColumns).
		OrderBy("created_at DESC").
		Limit(uint64(p.Limit)).
		Offset(p.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build subscriber list: %w", err)
	}

	rows, err := s.db.Query(listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []models.NewsletterSubscriber
	for rows.Next() {
		n, err := scanSubscriber(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, *n)
	}
	return subs, total, rows.Err()
}

// SetStatus transitions a subscriber's status. Returns nil if the
// subscriber doesn't exist.
func (s *SubscriberStore) SetStatus(id uuid.UUID, status models.SubscriberStatus) (*models.NewsletterSubscriber, error) {
	row := s.db.QueryRow(`
		UPDATE newsletter_subscribers
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+subscriberColumns, status, id)
	n, err := scanSubscriber(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set subscriber status: %w", err)
	}
	return n, nil
}

// SetStatusByEmail transitions a subscriber's status by address. Used by
// the public unsubscribe endpoint. Returns nil if the address is unknown.
func (s *SubscriberStore) SetStatusByEmail(email string, status models.SubscriberStatus) (*models.NewsletterSubscriber, error) {
	row := s.db.QueryRow(`
		UPDATE newsletter_subscribers
		SET status = $1, updated_at = NOW()
		WHERE email = $2
		RETURNING `+subscriberColumns, status, normalizeEmail(email))
	n, err := scanSubscriber(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set subscriber status by email: %w", err)
	}
	return n, nil
}

// Delete removes a subscriber by ID. Returns nil if not found.
func (s *SubscriberStore) Delete(id uuid.UUID) (*models.NewsletterSubscriber, error) {
	row := s.db.QueryRow(`DELETE FROM newsletter_subscribers WHERE id = $1 RETURNING `+subscriberColumns, id)
	n, err := scanSubscriber(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete subscriber: %w", err)
	}
	return n, nil
}

// CountActive returns the number of active subscribers.
func (s *SubscriberStore) CountActive() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM newsletter_subscribers WHERE status = 'active'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active subscribers: %w", err)
	}
	return count, nil
}
