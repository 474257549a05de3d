// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"craftpress/internal/models"
)

func TestProductStoreSizesRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	slug := "test-product-sizes"
	t.Cleanup(func() { cleanProducts(t, db, slug) })

	if _, err := s.Create(&models.Product{
		Name:           "Sized Product",
		Slug:           slug,
		Category:       "apparel",
		Sizes:          []string{"S", "M", "L"},
		BasePriceCents: 1999,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil {
		t.Fatal("expected product, got nil")
	}
	if len(found.Sizes) != 3 || found.Sizes[0] != "S" || found.Sizes[2] != "L" {
		t.Errorf("sizes: got %v, want [S M L]", found.Sizes)
	}
	if found.BasePriceCents != 1999 {
		t.Errorf("price: got %d, want 1999", found.BasePriceCents)
	}
}

func TestProductStoreNilSizes(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	slug := "test-product-nosizes"
	t.Cleanup(func() { cleanProducts(t, db, slug) })

	if _, err := s.Create(&models.Product{
		Name:     "One Size",
		Slug:     slug,
		Category: "accessories",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	// Nil sizes encode as an empty JSON array, never null.
	if found.Sizes == nil {
		t.Error("sizes should decode to an empty slice, not nil")
	}
	if len(found.Sizes) != 0 {
		t.Errorf("sizes: got %v, want empty", found.Sizes)
	}
}

func TestProductStoreSlugUnique(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	slug := "test-product-dupe"
	t.Cleanup(func() { cleanProducts(t, db, slug) })

	if _, err := s.Create(&models.Product{Name: "First", Slug: slug, Category: "c"}); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	_, err := s.Create(&models.Product{Name: "Second", Slug: slug, Category: "c"})
	if err == nil {
		t.Fatal("expected unique violation")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false, want true", err)
	}
}

func TestProductStoreCategoryFilter(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	slugs := []string{"test-cat-shirt", "test-cat-mug"}
	t.Cleanup(func() { cleanProducts(t, db, slugs...) })

	if _, err := s.Create(&models.Product{Name: "Shirt", Slug: slugs[0], Category: "test-apparel"}); err != nil {
		t.Fatalf("Create shirt: %v", err)
	}
	if _, err := s.Create(&models.Product{Name: "Mug", Slug: slugs[1], Category: "test-kitchen"}); err != nil {
		t.Fatalf("Create mug: %v", err)
	}

	items, total, err := s.List(ListParams{}, "test-apparel")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 {
		t.Fatalf("total: got %d, want 1", total)
	}
	if items[0].Slug != slugs[0] {
		t.Errorf("got %q, want %q", items[0].Slug, slugs[0])
	}
}
