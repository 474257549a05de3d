// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"craftpress/internal/models"
	"craftpress/internal/slug"
)

type postRequest struct {
	Title           string     `json:"title" validate:"required,max=300"`
	Slug            string     `json:"slug" validate:"max=300"`
	Body            string     `json:"body" validate:"max=100000"`
	Excerpt         *string    `json:"excerpt,omitempty"`
	Published       bool       `json:"published"`
	AuthorID        *uuid.UUID `json:"author_id,omitempty"`
	FeaturedImageID *uuid.UUID `json:"featured_image_id,omitempty"`
}

// PostsList returns posts with pagination, search, and an optional
// ?published filter.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	p := listParams(r)
	posts, total, err := a.posts.List(p, boolFilter(r, "published"))
	if err != nil {
		slog.Error("list posts failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondList(w, posts, total, p)
}

// PostCreate creates a post. An empty slug is generated from the title;
// the author defaults to the site's default author.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	authorID, ok := a.resolveAuthor(w, req.AuthorID)
	if !ok {
		return
	}

	post := &models.Post{
		Title:           strings.TrimSpace(req.Title),
		Slug:            postSlug(req.Slug, req.Title),
		Body:            req.Body,
		Excerpt:         req.Excerpt,
		Published:       req.Published,
		AuthorID:        authorID,
		FeaturedImageID: req.FeaturedImageID,
	}

	created, err := a.posts.Create(post)
	if err != nil {
		slog.Error("create post failed", "error", err)
		writeStoreError(w, err, "A post with this slug already exists.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusCreated, created)
}

// PostGet returns one post by ID.
func (a *Admin) PostGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	post, err := a.posts.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Post not found.")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// PostUpdate replaces a post's editable fields. The first transition to
// published stamps published_at; unpublishing preserves it.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req postRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	authorID, ok := a.resolveAuthor(w, req.AuthorID)
	if !ok {
		return
	}

	post := &models.Post{
		ID:              id,
		Title:           strings.TrimSpace(req.Title),
		Slug:            postSlug(req.Slug, req.Title),
		Body:            req.Body,
		Excerpt:         req.Excerpt,
		Published:       req.Published,
		AuthorID:        authorID,
		FeaturedImageID: req.FeaturedImageID,
	}

	updated, err := a.posts.Update(post)
	if err != nil {
		slog.Error("update post failed", "error", err)
		writeStoreError(w, err, "A post with this slug already exists.")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Post not found.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, updated)
}

// PostDelete removes a post.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted, err := a.posts.Delete(id)
	if err != nil {
		slog.Error("delete post failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if deleted == nil {
		respondError(w, http.StatusNotFound, "Post not found.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type bulkPublishRequest struct {
	IDs       []uuid.UUID `json:"ids" validate:"required,min=1"`
	Published bool        `json:"published"`
}

// bulkPublishResult reports the outcome for one ID in a bulk request.
type bulkPublishResult struct {
	ID    uuid.UUID `json:"id"`
	OK    bool      `json:"ok"`
	Error string    `json:"error,omitempty"`
}

// PostsBulkPublish flips the publish flag on each requested post
// independently. A failure on one ID does not roll back the others; the
// response reports per-ID outcomes and the resulting mixed state stands.
func (a *Admin) PostsBulkPublish(w http.ResponseWriter, r *http.Request) {
	var req bulkPublishRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	results := make([]bulkPublishResult, 0, len(req.IDs))
	succeeded := 0
	for _, id := range req.IDs {
		post, err := a.posts.SetPublished(id, req.Published)
		switch {
		case err != nil:
			slog.Error("bulk publish failed", "error", err, "post", id)
			results = append(results, bulkPublishResult{ID: id, Error: "update failed"})
		case post == nil:
			results = append(results, bulkPublishResult{ID: id, Error: "not found"})
		default:
			results = append(results, bulkPublishResult{ID: id, OK: true})
			succeeded++
		}
	}

	if succeeded > 0 {
		a.invalidatePages(r)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
}

// resolveAuthor returns the requested author ID, falling back to the
// default author when none is given. Writes the error response itself.
func (a *Admin) resolveAuthor(w http.ResponseWriter, requested *uuid.UUID) (uuid.UUID, bool) {
	if requested != nil {
		author, err := a.authors.FindByID(*requested)
		if err != nil {
			slog.Error("author lookup failed", "error", err)
			respondError(w, http.StatusInternalServerError, "Internal server error.")
			return uuid.Nil, false
		}
		if author == nil {
			respondError(w, http.StatusBadRequest, "Unknown author.")
			return uuid.Nil, false
		}
		return author.ID, true
	}

	def, err := a.authors.FindDefault()
	if err != nil {
		slog.Error("default author lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return uuid.Nil, false
	}
	if def == nil {
		respondError(w, http.StatusBadRequest, "No default author configured.")
		return uuid.Nil, false
	}
	return def.ID, true
}

// postSlug picks the explicit slug or generates one from the title.
func postSlug(explicit, title string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return slug.Generate(s)
	}
	return slug.Generate(title)
}
