// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"craftpress/internal/models"
	"craftpress/internal/store"
)

func TestAuthorUpdateCannotUnsetDefault(t *testing.T) {
	db := testDB(t)
	admin := newTestAdmin(t, db)
	author := seedAuthor(t, db, "handler-unset-default")

	body, _ := json.Marshal(map[string]any{
		"name":       author.Name,
		"slug":       author.Slug,
		"is_default": false,
	})
	req := withChiURLParam(
		withSession(httptest.NewRequest(http.MethodPut, "/", bytes.NewReader(body)), testSession()),
		"id", author.ID.String(),
	)
	rec := httptest.NewRecorder()

	admin.AuthorUpdate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestAuthorDeleteDefaultPromotesReplacement(t *testing.T) {
	db := testDB(t)
	admin := newTestAdmin(t, db)
	authors := store.NewAuthorStore(db)

	slugs := []string{"handler-del-default", "handler-del-heir"}
	t.Cleanup(func() { cleanAuthors(t, db, slugs...) })

	// The heir must exist before the default author is deleted.
	if _, err := authors.Create(&models.Author{Name: "Heir", Slug: slugs[1]}); err != nil {
		t.Fatalf("create heir: %v", err)
	}
	victim := seedAuthor(t, db, slugs[0])

	req := withChiURLParam(
		withSession(httptest.NewRequest(http.MethodDelete, "/", nil), testSession()),
		"id", victim.ID.String(),
	)
	rec := httptest.NewRecorder()

	admin.AuthorDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status       string    `json:"status"`
		ReassignedTo uuid.UUID `json:"reassigned_to"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	gone, _ := authors.FindByID(victim.ID)
	if gone != nil {
		t.Error("default author should be deleted")
	}

	promoted, err := authors.FindByID(resp.ReassignedTo)
	if err != nil || promoted == nil {
		t.Fatalf("promoted author lookup: %v", err)
	}
	if !promoted.IsDefault {
		t.Error("replacement author should now be default")
	}

	// Exactly one default remains.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM authors WHERE is_default`).Scan(&count); err != nil {
		t.Fatalf("count defaults: %v", err)
	}
	if count != 1 {
		t.Errorf("default count: got %d, want 1", count)
	}
}

func TestAuthorDeleteUnknownID(t *testing.T) {
	db := testDB(t)
	admin := newTestAdmin(t, db)

	req := withChiURLParam(
		withSession(httptest.NewRequest(http.MethodDelete, "/", nil), testSession()),
		"id", uuid.NewString(),
	)
	rec := httptest.NewRecorder()

	admin.AuthorDelete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}
