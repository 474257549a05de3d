// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"craftpress/internal/models"
)

func TestAuthorStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewAuthorStore(db)

	slug := "test-author-create"
	t.Cleanup(func() { cleanAuthors(t, db, slug) })

	created, err := s.Create(&models.Author{Name: "Test Author", Slug: slug})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.IsDefault {
		t.Error("new authors must not be default unless asked")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Slug != slug {
		t.Fatalf("FindByID: got %+v, want slug %q", found, slug)
	}
}

func TestAuthorStoreSetDefault(t *testing.T) {
	db := testDB(t)
	s := NewAuthorStore(db)

	slugs := []string{"test-default-a", "test-default-b"}
	t.Cleanup(func() { cleanAuthors(t, db, slugs...) })

	a, err := s.Create(&models.Author{Name: "Author A", Slug: slugs[0]})
	if err != nil {
		t.Fatalf("Create A: %v", err)
	}
	b, err := s.Create(&models.Author{Name: "Author B", Slug: slugs[1]})
	if err != nil {
		t.Fatalf("Create B: %v", err)
	}

	if err := s.SetDefault(a.ID); err != nil {
		t.Fatalf("SetDefault A: %v", err)
	}

	// Promoting B clears A.
	if err := s.SetDefault(b.ID); err != nil {
		t.Fatalf("SetDefault B: %v", err)
	}

	aNow, _ := s.FindByID(a.ID)
	bNow, _ := s.FindByID(b.ID)
	if aNow.IsDefault {
		t.Error("A should no longer be default")
	}
	if !bNow.IsDefault {
		t.Error("B should be default")
	}

	// Exactly one default row exists in total.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM authors WHERE is_default`).Scan(&count); err != nil {
		t.Fatalf("count defaults: %v", err)
	}
	if count != 1 {
		t.Errorf("default count: got %d, want 1", count)
	}
}

func TestAuthorStoreDeleteAndReassign(t *testing.T) {
	db := testDB(t)
	authors := NewAuthorStore(db)
	posts := NewPostStore(db)

	authorSlugs := []string{"test-reassign-victim", "test-reassign-heir"}
	postSlug := "test-reassign-post"
	t.Cleanup(func() {
		cleanPosts(t, db, postSlug)
		cleanAuthors(t, db, authorSlugs...)
	})

	victim, err := authors.Create(&models.Author{Name: "Victim", Slug: authorSlugs[0]})
	if err != nil {
		t.Fatalf("Create victim: %v", err)
	}
	heir, err := authors.Create(&models.Author{Name: "Heir", Slug: authorSlugs[1]})
	if err != nil {
		t.Fatalf("Create heir: %v", err)
	}

	post, err := posts.Create(&models.Post{
		Title:    "Orphaned Post",
		Slug:     postSlug,
		Body:     "body",
		AuthorID: victim.ID,
	})
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}

	if err := authors.DeleteAndReassign(victim.ID, heir.ID, true); err != nil {
		t.Fatalf("DeleteAndReassign: %v", err)
	}

	gone, _ := authors.FindByID(victim.ID)
	if gone != nil {
		t.Error("victim should be deleted")
	}

	moved, err := posts.FindByID(post.ID)
	if err != nil || moved == nil {
		t.Fatalf("post lookup: %v", err)
	}
	if moved.AuthorID != heir.ID {
		t.Errorf("post author: got %s, want %s", moved.AuthorID, heir.ID)
	}

	promoted, _ := authors.FindByID(heir.ID)
	if !promoted.IsDefault {
		t.Error("heir should be promoted to default")
	}
}

func TestAuthorStoreOldestExcept(t *testing.T) {
	db := testDB(t)
	s := NewAuthorStore(db)

	slugs := []string{"test-oldest-first", "test-oldest-second"}
	t.Cleanup(func() { cleanAuthors(t, db, slugs...) })

	first, err := s.Create(&models.Author{Name: "First", Slug: slugs[0]})
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	if _, err := s.Create(&models.Author{Name: "Second", Slug: slugs[1]}); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	candidate, err := s.OldestExcept(first.ID)
	if err != nil {
		t.Fatalf("OldestExcept: %v", err)
	}
	if candidate == nil {
		t.Fatal("expected a candidate")
	}
	if candidate.ID == first.ID {
		t.Error("candidate must not be the excluded author")
	}
}
