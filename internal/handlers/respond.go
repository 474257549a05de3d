// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the CraftPress service.
// Handlers are grouped by concern (admin, auth, public) and receive their
// dependencies through the handler struct. Admin handlers speak JSON;
// public handlers render HTML pages.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"craftpress/internal/store"
)

// validate is the shared request validator. Struct tags on the request
// types drive the rules.
var validate = validator.New()

// listResponse is the envelope for all paginated admin list endpoints.
type listResponse struct {
	Items any `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError writes the standard error body used across the API.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondList writes a paginated list envelope. items must never be a nil
// slice so the JSON stays an array.
func respondList(w http.ResponseWriter, items any, total int, p store.ListParams) {
	p = p.Normalize()
	respondJSON(w, http.StatusOK, listResponse{
		Items: items,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// decodeJSON parses the request body into dst and runs validation.
// On failure it writes a 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			respondError(w, http.StatusBadRequest, "Invalid value for field "+strings.ToLower(verrs[0].Field())+".")
			return false
		}
		respondError(w, http.StatusBadRequest, "Invalid request.")
		return false
	}
	return true
}

// idParam parses the {id} chi URL parameter as a UUID. On failure it
// writes a 400 response and returns false.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID.")
		return uuid.Nil, false
	}
	return id, true
}

// listParams reads the shared ?page, ?limit, and ?search query values.
func listParams(r *http.Request) store.ListParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return store.ListParams{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(q.Get("search")),
	}
}

// boolFilter reads an optional boolean query parameter. Absent or
// unparseable values mean "no filter".
func boolFilter(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// writeStoreError maps a store error to a response: unique constraint
// violations become 409 with a hint, everything else a generic 500.
func writeStoreError(w http.ResponseWriter, err error, conflictMsg string) {
	if store.IsUniqueViolation(err) {
		respondError(w, http.StatusConflict, conflictMsg)
		return
	}
	respondError(w, http.StatusInternalServerError, "Internal server error.")
}
