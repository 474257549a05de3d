// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"craftpress/internal/models"
)

func TestSubscriberStoreSubscribeReactivates(t *testing.T) {
	db := testDB(t)
	s := NewSubscriberStore(db)

	email := "test-reactivate@store-test.local"
	t.Cleanup(func() { cleanSubscribers(t, db, email) })

	sub, err := s.Subscribe(email)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if sub.Status != models.SubscriberActive {
		t.Errorf("status: got %q, want %q", sub.Status, models.SubscriberActive)
	}

	if _, err := s.SetStatus(sub.ID, models.SubscriberUnsubscribed); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	// Subscribing the same address again flips it back to active
	// without creating a second row.
	again, err := s.Subscribe(email)
	if err != nil {
		t.Fatalf("Subscribe again: %v", err)
	}
	if again.ID != sub.ID {
		t.Error("re-subscribe must reuse the existing row")
	}
	if again.Status != models.SubscriberActive {
		t.Errorf("status after re-subscribe: got %q, want active", again.Status)
	}
}

func TestSubscriberStoreSubscribeNormalizesEmail(t *testing.T) {
	db := testDB(t)
	s := NewSubscriberStore(db)

	email := "test-normalize@store-test.local"
	t.Cleanup(func() { cleanSubscribers(t, db, email) })

	// Mixed case and surrounding whitespace, as the admin API may pass.
	first, err := s.Subscribe("  Test-Normalize@Store-Test.LOCAL ")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if first.Email != email {
		t.Errorf("stored email: got %q, want %q", first.Email, email)
	}

	// The canonical form from the public path hits the same row.
	second, err := s.Subscribe(email)
	if err != nil {
		t.Fatalf("Subscribe canonical: %v", err)
	}
	if second.ID != first.ID {
		t.Error("differently cased addresses must not create separate rows")
	}

	// Lookups and status changes normalize too.
	if sub, err := s.SetStatusByEmail("TEST-NORMALIZE@store-test.local", models.SubscriberUnsubscribed); err != nil || sub == nil {
		t.Fatalf("SetStatusByEmail mixed case: sub=%v err=%v", sub, err)
	}
}

func TestSubscriberStoreStatusVisibleInList(t *testing.T) {
	db := testDB(t)
	s := NewSubscriberStore(db)

	email := "test-status-list@store-test.local"
	t.Cleanup(func() { cleanSubscribers(t, db, email) })

	sub, err := s.Subscribe(email)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if _, err := s.SetStatus(sub.ID, models.SubscriberBounced); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	// The transition is visible on the very next list call.
	bounced, _, err := s.List(ListParams{Search: email}, models.SubscriberBounced)
	if err != nil {
		t.Fatalf("List bounced: %v", err)
	}
	if len(bounced) != 1 || bounced[0].ID != sub.ID {
		t.Fatalf("bounced list: got %d rows, want the test subscriber", len(bounced))
	}

	active, _, err := s.List(ListParams{Search: email}, models.SubscriberActive)
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	if len(active) != 0 {
		t.Error("bounced subscriber must not appear in the active list")
	}
}

func TestSubscriberStoreSetStatusByEmail(t *testing.T) {
	db := testDB(t)
	s := NewSubscriberStore(db)

	email := "test-byemail@store-test.local"
	t.Cleanup(func() { cleanSubscribers(t, db, email) })

	if _, err := s.Subscribe(email); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	sub, err := s.SetStatusByEmail(email, models.SubscriberUnsubscribed)
	if err != nil {
		t.Fatalf("SetStatusByEmail: %v", err)
	}
	if sub == nil || sub.Status != models.SubscriberUnsubscribed {
		t.Fatalf("got %+v, want unsubscribed", sub)
	}

	// Unknown addresses return nil, not an error.
	missing, err := s.SetStatusByEmail("missing@store-test.local", models.SubscriberUnsubscribed)
	if err != nil {
		t.Fatalf("SetStatusByEmail missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown email")
	}
}
