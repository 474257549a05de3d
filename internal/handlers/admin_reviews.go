// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"craftpress/internal/models"
)

type reviewRequest struct {
	AuthorName string `json:"author_name" validate:"required,max=200"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Content    string `json:"content" validate:"required,max=5000"`
}

// ReviewsList returns reviews with pagination, search, and an optional
// ?status filter (pending, approved, rejected).
func (a *Admin) ReviewsList(w http.ResponseWriter, r *http.Request) {
	p := listParams(r)
	status := models.ReviewStatus(r.URL.Query().Get("status"))
	reviews, total, err := a.reviews.List(p, status)
	if err != nil {
		slog.Error("list reviews failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	respondList(w, reviews, total, p)
}

// ReviewCreate adds a review through the admin API. It enters the queue
// as pending like any visitor-submitted review.
func (a *Admin) ReviewCreate(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review := &models.Review{
		AuthorName: strings.TrimSpace(req.AuthorName),
		Rating:     req.Rating,
		Content:    strings.TrimSpace(req.Content),
	}

	created, err := a.reviews.Create(review)
	if err != nil {
		slog.Error("create review failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ReviewGet returns one review by ID.
func (a *Admin) ReviewGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	review, err := a.reviews.FindByID(id)
	if err != nil {
		slog.Error("find review failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if review == nil {
		respondError(w, http.StatusNotFound, "Review not found.")
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// ReviewApprove transitions a review to approved, making it visible on
// the public site.
func (a *Admin) ReviewApprove(w http.ResponseWriter, r *http.Request) {
	a.setReviewStatus(w, r, models.ReviewStatusApproved)
}

// ReviewReject transitions a review to rejected.
func (a *Admin) ReviewReject(w http.ResponseWriter, r *http.Request) {
	a.setReviewStatus(w, r, models.ReviewStatusRejected)
}

func (a *Admin) setReviewStatus(w http.ResponseWriter, r *http.Request, status models.ReviewStatus) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	review, err := a.reviews.SetStatus(id, status)
	if err != nil {
		slog.Error("set review status failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if review == nil {
		respondError(w, http.StatusNotFound, "Review not found.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, review)
}

// ReviewDelete removes a review.
func (a *Admin) ReviewDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted, err := a.reviews.Delete(id)
	if err != nil {
		slog.Error("delete review failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if deleted == nil {
		respondError(w, http.StatusNotFound, "Review not found.")
		return
	}

	a.invalidatePages(r)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
