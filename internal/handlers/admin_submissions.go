// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"craftpress/internal/models"
)

// SubmissionsList returns contact form submissions with pagination,
// search, and an optional ?processed filter.
func (a *Admin) SubmissionsList(w http.ResponseWriter, r *http.Request) {
	p := listParams(r)
	items, total, err := a.submissions.List(p, boolFilter(r, "processed"))
	if err != nil {
		slog.Error("list submissions failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if items == nil {
		items = []models.FormSubmission{}
	}
	respondList(w, items, total, p)
}

// SubmissionGet returns one submission by ID.
func (a *Admin) SubmissionGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	sub, err := a.submissions.FindByID(id)
	if err != nil {
		slog.Error("find submission failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if sub == nil {
		respondError(w, http.StatusNotFound, "Submission not found.")
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// SubmissionProcessed marks a submission handled, stamping processed_at.
// The flag is a plain work-queue marker; marking twice is harmless.
func (a *Admin) SubmissionProcessed(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	sub, err := a.submissions.MarkProcessed(id)
	if err != nil {
		slog.Error("mark submission processed failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if sub == nil {
		respondError(w, http.StatusNotFound, "Submission not found.")
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// SubmissionDelete removes a submission.
func (a *Admin) SubmissionDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted, err := a.submissions.Delete(id)
	if err != nil {
		slog.Error("delete submission failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if deleted == nil {
		respondError(w, http.StatusNotFound, "Submission not found.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
