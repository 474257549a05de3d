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

type categoryRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Slug      string `json:"slug" validate:"max=200"`
	SortOrder int    `json:"sort_order"`
}

// CategoriesList returns all portfolio categories in sort order.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	cats, err := a.portfolio.ListCategories()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if cats == nil {
		cats = []models.PortfolioCategory{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": cats})
}

// CategoryCreate creates a portfolio category.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	s := strings.TrimSpace(req.Slug)
	if s == "" {
		s = name
	}

	created, err := a.portfolio.CreateCategory(&models.PortfolioCategory{
		Name:      name,
		Slug:      slug.Generate(s),
		SortOrder: req.SortOrder,
	})
	if err != nil {
		slog.Error("create category failed", "error", err)
		writeStoreError(w, err, "A category with this slug already exists.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusCreated, created)
}

// CategoryUpdate replaces a category's fields.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	s := strings.TrimSpace(req.Slug)
	if s == "" {
		s = name
	}

	updated, err := a.portfolio.UpdateCategory(&models.PortfolioCategory{
		ID:        id,
		Name:      name,
		Slug:      slug.Generate(s),
		SortOrder: req.SortOrder,
	})
	if err != nil {
		slog.Error("update category failed", "error", err)
		writeStoreError(w, err, "A category with this slug already exists.")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Category not found.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, updated)
}

// CategoryDelete removes a category. Projects in it keep existing with
// no category.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted, err := a.portfolio.DeleteCategory(id)
	if err != nil {
		slog.Error("delete category failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if deleted == nil {
		respondError(w, http.StatusNotFound, "Category not found.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type projectImageRequest struct {
	MediaID   uuid.UUID        `json:"media_id" validate:"required"`
	Caption   *string          `json:"caption,omitempty"`
	SortOrder int              `json:"sort_order"`
	ImageType models.ImageType `json:"image_type" validate:"required,oneof=gallery before after cover"`
}

type projectRequest struct {
	Title       string                `json:"title" validate:"required,max=300"`
	Slug        string                `json:"slug" validate:"max=300"`
	Description *string               `json:"description,omitempty"`
	CategoryID  *uuid.UUID            `json:"category_id,omitempty"`
	AuthorID    *uuid.UUID            `json:"author_id,omitempty"`
	Published   bool                  `json:"published"`
	Images      []projectImageRequest `json:"images" validate:"dive"`
}

// ProjectsList returns portfolio projects with pagination, search, and
// optional ?category and ?published filters.
func (a *Admin) ProjectsList(w http.ResponseWriter, r *http.Request) {
	p := listParams(r)

	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid category ID.")
			return
		}
		categoryID = &id
	}

	projects, total, err := a.portfolio.ListProjects(p, categoryID, boolFilter(r, "published"))
	if err != nil {
		slog.Error("list projects failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if projects == nil {
		projects = []models.PortfolioProject{}
	}
	respondList(w, projects, total, p)
}

// ProjectCreate creates a portfolio project with its image associations.
func (a *Admin) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	authorID, ok := a.resolveAuthor(w, req.AuthorID)
	if !ok {
		return
	}

	project := &models.PortfolioProject{
		Title:       strings.TrimSpace(req.Title),
		Slug:        postSlug(req.Slug, req.Title),
		Description: req.Description,
		CategoryID:  req.CategoryID,
		AuthorID:    authorID,
		Published:   req.Published,
	}

	created, err := a.portfolio.CreateProject(project)
	if err != nil {
		slog.Error("create project failed", "error", err)
		writeStoreError(w, err, "A project with this slug already exists.")
		return
	}

	if len(req.Images) > 0 {
		if err := a.portfolio.ReplaceImages(created.ID, projectImages(created.ID, req.Images)); err != nil {
			slog.Error("set project images failed", "error", err, "project", created.ID)
			respondError(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
	}

	full, err := a.portfolio.FindProject(created.ID)
	if err != nil || full == nil {
		slog.Error("reload project failed", "error", err, "project", created.ID)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusCreated, full)
}

// ProjectGet returns one project with its images ordered by sort_order.
func (a *Admin) ProjectGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	project, err := a.portfolio.FindProject(id)
	if err != nil {
		slog.Error("find project failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "Project not found.")
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// ProjectUpdate replaces a project's fields and swaps its image
// associations wholesale: the request's image list fully replaces the
// stored one.
func (a *Admin) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	authorID, ok := a.resolveAuthor(w, req.AuthorID)
	if !ok {
		return
	}

	project := &models.PortfolioProject{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Slug:        postSlug(req.Slug, req.Title),
		Description: req.Description,
		CategoryID:  req.CategoryID,
		AuthorID:    authorID,
		Published:   req.Published,
	}

	updated, err := a.portfolio.UpdateProject(project)
	if err != nil {
		slog.Error("update project failed", "error", err)
		writeStoreError(w, err, "A project with this slug already exists.")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Project not found.")
		return
	}

	if err := a.portfolio.ReplaceImages(id, projectImages(id, req.Images)); err != nil {
		slog.Error("replace project images failed", "error", err, "project", id)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	full, err := a.portfolio.FindProject(id)
	if err != nil || full == nil {
		slog.Error("reload project failed", "error", err, "project", id)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, full)
}

// ProjectDelete removes a project and its image associations.
func (a *Admin) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted, err := a.portfolio.DeleteProject(id)
	if err != nil {
		slog.Error("delete project failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if deleted == nil {
		respondError(w, http.StatusNotFound, "Project not found.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// projectImages converts request image entries to model rows.
func projectImages(projectID uuid.UUID, reqs []projectImageRequest) []models.ProjectImage {
	images := make([]models.ProjectImage, 0, len(reqs))
	for _, img := range reqs {
		images = append(images, models.ProjectImage{
			ProjectID: projectID,
			MediaID:   img.MediaID,
			Caption:   img.Caption,
			SortOrder: img.SortOrder,
			ImageType: img.ImageType,
		})
	}
	return images
}
