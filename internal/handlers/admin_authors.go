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

type authorRequest struct {
	Name      string     `json:"name" validate:"required,max=200"`
	Slug      string     `json:"slug" validate:"max=200"`
	Bio       *string    `json:"bio,omitempty"`
	AvatarID  *uuid.UUID `json:"avatar_id,omitempty"`
	IsDefault bool       `json:"is_default"`
}

// AuthorsList returns all authors. The list is small enough that it is
// not paginated.
func (a *Admin) AuthorsList(w http.ResponseWriter, r *http.Request) {
	authors, err := a.authors.List()
	if err != nil {
		slog.Error("list authors failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if authors == nil {
		authors = []models.Author{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": authors})
}

// AuthorCreate creates an author. An empty slug is generated from the
// name. Marking the new author default clears the flag on all others.
func (a *Admin) AuthorCreate(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	s := strings.TrimSpace(req.Slug)
	if s == "" {
		s = name
	}

	author := &models.Author{
		Name:     name,
		Slug:     slug.Generate(s),
		Bio:      req.Bio,
		AvatarID: req.AvatarID,
	}

	created, err := a.authors.Create(author)
	if err != nil {
		slog.Error("create author failed", "error", err)
		writeStoreError(w, err, "An author with this slug already exists.")
		return
	}

	if req.IsDefault {
		if err := a.authors.SetDefault(created.ID); err != nil {
			slog.Error("set default author failed", "error", err)
			respondError(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
		created.IsDefault = true
	}

	respondJSON(w, http.StatusCreated, created)
}

// AuthorGet returns one author by ID.
func (a *Admin) AuthorGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	author, err := a.authors.FindByID(id)
	if err != nil {
		slog.Error("find author failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if author == nil {
		respondError(w, http.StatusNotFound, "Author not found.")
		return
	}
	respondJSON(w, http.StatusOK, author)
}

// AuthorUpdate replaces an author's fields. Promoting an author to
// default clears the flag elsewhere; demoting the only default is
// rejected because exactly one author must hold it.
func (a *Admin) AuthorUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req authorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	current, err := a.authors.FindByID(id)
	if err != nil {
		slog.Error("find author failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if current == nil {
		respondError(w, http.StatusNotFound, "Author not found.")
		return
	}

	if current.IsDefault && !req.IsDefault {
		respondError(w, http.StatusBadRequest, "Cannot unset the default author. Set another author as default instead.")
		return
	}

	name := strings.TrimSpace(req.Name)
	s := strings.TrimSpace(req.Slug)
	if s == "" {
		s = name
	}

	author := &models.Author{
		ID:       id,
		Name:     name,
		Slug:     slug.Generate(s),
		Bio:      req.Bio,
		AvatarID: req.AvatarID,
	}

	updated, err := a.authors.Update(author)
	if err != nil {
		slog.Error("update author failed", "error", err)
		writeStoreError(w, err, "An author with this slug already exists.")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Author not found.")
		return
	}

	if req.IsDefault && !current.IsDefault {
		if err := a.authors.SetDefault(id); err != nil {
			slog.Error("set default author failed", "error", err)
			respondError(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
	}
	updated.IsDefault = req.IsDefault || current.IsDefault

	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, updated)
}

// AuthorDelete removes an author. Deleting the last author is rejected.
// The deleted author's posts and projects are reassigned to the default
// author; when the default itself is deleted, the oldest remaining
// author is promoted first and receives the content.
func (a *Admin) AuthorDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	author, err := a.authors.FindByID(id)
	if err != nil {
		slog.Error("find author failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if author == nil {
		respondError(w, http.StatusNotFound, "Author not found.")
		return
	}

	count, err := a.authors.Count()
	if err != nil {
		slog.Error("count authors failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if count <= 1 {
		respondError(w, http.StatusBadRequest, "Cannot delete the last author.")
		return
	}

	var replacement *models.Author
	promote := false
	if author.IsDefault {
		replacement, err = a.authors.OldestExcept(id)
		promote = true
	} else {
		replacement, err = a.authors.FindDefault()
	}
	if err != nil {
		slog.Error("replacement author lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if replacement == nil {
		respondError(w, http.StatusInternalServerError, "No replacement author available.")
		return
	}

	if err := a.authors.DeleteAndReassign(id, replacement.ID, promote); err != nil {
		slog.Error("delete author failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, map[string]any{
		"status":        "deleted",
		"reassigned_to": replacement.ID,
	})
}
