// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"testing"

	"craftpress/internal/models"
)

// testAuthor creates a throwaway author for post tests.
func testAuthor(t *testing.T, db *sql.DB, slug string) *models.Author {
	t.Helper()
	s := NewAuthorStore(db)
	a, err := s.Create(&models.Author{Name: "Post Test Author", Slug: slug})
	if err != nil {
		t.Fatalf("create test author: %v", err)
	}
	t.Cleanup(func() { cleanAuthors(t, db, slug) })
	return a
}

func TestPostStorePublishStampsPublishedAt(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	author := testAuthor(t, db, "test-post-publish-author")

	slug := "test-post-publish"
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	draft, err := s.Create(&models.Post{
		Title:    "Draft Post",
		Slug:     slug,
		Body:     "body",
		AuthorID: author.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if draft.Published {
		t.Error("expected unpublished")
	}
	if draft.PublishedAt != nil {
		t.Error("draft must not have published_at")
	}

	published, err := s.SetPublished(draft.ID, true)
	if err != nil {
		t.Fatalf("SetPublished: %v", err)
	}
	if !published.Published {
		t.Error("expected published")
	}
	if published.PublishedAt == nil {
		t.Fatal("first publish must stamp published_at")
	}
	firstStamp := *published.PublishedAt

	// Unpublishing preserves the stamp; republishing does not move it.
	unpublished, err := s.SetPublished(draft.ID, false)
	if err != nil {
		t.Fatalf("SetPublished(false): %v", err)
	}
	if unpublished.PublishedAt == nil || !unpublished.PublishedAt.Equal(firstStamp) {
		t.Error("unpublish must preserve published_at")
	}

	again, err := s.SetPublished(draft.ID, true)
	if err != nil {
		t.Fatalf("SetPublished(true) again: %v", err)
	}
	if !again.PublishedAt.Equal(firstStamp) {
		t.Error("republish must not move published_at")
	}
}

func TestPostStoreCreatePublished(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	author := testAuthor(t, db, "test-post-created-published-author")

	slug := "test-post-created-published"
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	post, err := s.Create(&models.Post{
		Title:     "Live Right Away",
		Slug:      slug,
		Body:      "body",
		Published: true,
		AuthorID:  author.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.PublishedAt == nil {
		t.Error("creating published must stamp published_at")
	}
}

func TestPostStoreListSearch(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	author := testAuthor(t, db, "test-post-search-author")

	slugs := []string{"test-search-needle", "test-search-haystack"}
	t.Cleanup(func() { cleanPosts(t, db, slugs...) })

	for i, slug := range slugs {
		title := "Haystack Post"
		if i == 0 {
			title = "Unique Needle Title"
		}
		if _, err := s.Create(&models.Post{
			Title:    title,
			Slug:     slug,
			Body:     "body",
			AuthorID: author.ID,
		}); err != nil {
			t.Fatalf("Create %s: %v", slug, err)
		}
	}

	posts, total, err := s.List(ListParams{Search: "needle"}, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total < 1 {
		t.Fatalf("total: got %d, want >= 1", total)
	}
	found := false
	for _, p := range posts {
		if p.Slug == slugs[0] {
			found = true
		}
		if p.Slug == slugs[1] {
			t.Error("haystack post must not match the needle search")
		}
	}
	if !found {
		t.Error("needle post missing from search results")
	}
}

func TestPostStoreListPublishedFilter(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	author := testAuthor(t, db, "test-post-filter-author")

	slugs := []string{"test-filter-live", "test-filter-draft"}
	t.Cleanup(func() { cleanPosts(t, db, slugs...) })

	if _, err := s.Create(&models.Post{
		Title: "Live", Slug: slugs[0], Body: "b", Published: true, AuthorID: author.ID,
	}); err != nil {
		t.Fatalf("Create live: %v", err)
	}
	if _, err := s.Create(&models.Post{
		Title: "Draft", Slug: slugs[1], Body: "b", AuthorID: author.ID,
	}); err != nil {
		t.Fatalf("Create draft: %v", err)
	}

	published := true
	posts, _, err := s.List(ListParams{Search: "test-filter"}, &published)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, p := range posts {
		if !p.Published {
			t.Errorf("unpublished post %q leaked through the filter", p.Slug)
		}
	}
}
