// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"craftpress/internal/models"
)

// SubscribersList returns newsletter subscribers with pagination, email
// search, and an optional ?status filter. Status changes made through
// the update endpoint are reflected by the very next list call.
func (a *Admin) SubscribersList(w http.ResponseWriter, r *http.Request) {
	p := listParams(r)
	status := models.SubscriberStatus(r.URL.Query().Get("status"))
	subs, total, err := a.subscribers.List(p, status)
	if err != nil {
		slog.Error("list subscribers failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if subs == nil {
		subs = []models.NewsletterSubscriber{}
	}
	respondList(w, subs, total, p)
}

type subscriberCreateRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscriberCreate adds (or reactivates) a subscriber from the admin side.
func (a *Admin) SubscriberCreate(w http.ResponseWriter, r *http.Request) {
	var req subscriberCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sub, err := a.subscribers.Subscribe(req.Email)
	if err != nil {
		slog.Error("create subscriber failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}

// SubscriberGet returns one subscriber by ID.
func (a *Admin) SubscriberGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	sub, err := a.subscribers.FindByID(id)
	if err != nil {
		slog.Error("find subscriber failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if sub == nil {
		respondError(w, http.StatusNotFound, "Subscriber not found.")
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

type subscriberUpdateRequest struct {
	Status models.SubscriberStatus `json:"status" validate:"required"`
}

// SubscriberUpdate transitions a subscriber between active,
// unsubscribed, and bounced.
func (a *Admin) SubscriberUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req subscriberUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !models.ValidSubscriberStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "Unknown subscriber status.")
		return
	}

	sub, err := a.subscribers.SetStatus(id, req.Status)
	if err != nil {
		slog.Error("set subscriber status failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if sub == nil {
		respondError(w, http.StatusNotFound, "Subscriber not found.")
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// SubscriberDelete removes a subscriber entirely. Prefer the
// unsubscribed status for normal list hygiene.
func (a *Admin) SubscriberDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	deleted, err := a.subscribers.Delete(id)
	if err != nil {
		slog.Error("delete subscriber failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if deleted == nil {
		respondError(w, http.StatusNotFound, "Subscriber not found.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
