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
)

type productRequest struct {
	Name            string     `json:"name" validate:"required,max=300"`
	Slug            string     `json:"slug" validate:"max=300"`
	Description     *string    `json:"description,omitempty"`
	Category        string     `json:"category" validate:"required,max=100"`
	Sizes           []string   `json:"sizes" validate:"dive,required,max=50"`
	BasePriceCents  int64      `json:"base_price_cents" validate:"min=0"`
	FeaturedImageID *uuid.UUID `json:"featured_image_id,omitempty"`
	Published       bool       `json:"published"`
}

// ProductsList returns products with pagination, search, and an optional
// ?category filter.
func (a *Admin) ProductsList(w http.ResponseWriter, r *http.Request) {
	p := listParams(r)
	products, total, err := a.products.List(p, r.URL.Query().Get("category"))
	if err != nil {
		slog.Error("list products failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	respondList(w, products, total, p)
}

// ProductCreate creates a product. Sizes are stored as a JSON array; a
// missing list means the product has no size options.
func (a *Admin) ProductCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product := &models.Product{
		Name:            strings.TrimSpace(req.Name),
		Slug:            postSlug(req.Slug, req.Name),
		Description:     req.Description,
		Category:        strings.TrimSpace(req.Category),
		Sizes:           req.Sizes,
		BasePriceCents:  req.BasePriceCents,
		FeaturedImageID: req.FeaturedImageID,
		Published:       req.Published,
	}

	created, err := a.products.Create(product)
	if err != nil {
		slog.Error("create product failed", "error", err)
		writeStoreError(w, err, "A product with this slug already exists.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusCreated, created)
}

// ProductGet returns one product by ID.
func (a *Admin) ProductGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	product, err := a.products.FindByID(id)
	if err != nil {
		slog.Error("find product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "Product not found.")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// ProductUpdate replaces a product's fields.
func (a *Admin) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product := &models.Product{
		ID:              id,
		Name:            strings.TrimSpace(req.Name),
		Slug:            postSlug(req.Slug, req.Name),
		Description:     req.Description,
		Category:        strings.TrimSpace(req.Category),
		Sizes:           req.Sizes,
		BasePriceCents:  req.BasePriceCents,
		FeaturedImageID: req.FeaturedImageID,
		Published:       req.Published,
	}

	updated, err := a.products.Update(product)
	if err != nil {
		slog.Error("update product failed", "error", err)
		writeStoreError(w, err, "A product with this slug already exists.")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Product not found.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, updated)
}

// ProductDelete removes a product.
func (a *Admin) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted, err := a.products.Delete(id)
	if err != nil {
		slog.Error("delete product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if deleted == nil {
		respondError(w, http.StatusNotFound, "Product not found.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
