// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"craftpress/internal/models"
	"craftpress/internal/render"
	"craftpress/internal/store"
)

// Validation limits for the public forms.
const (
	maxContactNameLen    = 200
	maxContactMessageLen = 10_000
)

// PublicForms groups the unauthenticated write endpoints: the contact
// form and newsletter subscribe/unsubscribe. These routes are rate
// limited at the router.
type PublicForms struct {
	renderer    *render.Renderer
	submissions *store.SubmissionStore
	subscribers *store.SubscriberStore
}

// NewPublicForms creates the PublicForms handler group.
func NewPublicForms(renderer *render.Renderer, submissions *store.SubmissionStore, subscribers *store.SubscriberStore) *PublicForms {
	return &PublicForms{
		renderer:    renderer,
		submissions: submissions,
		subscribers: subscribers,
	}
}

// validateContactForm returns the first problem found, or "".
func validateContactForm(name, email, message string) string {
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxContactNameLen {
		return "Name is too long (max 200 characters)."
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "A valid email address is required."
	}
	if message == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(message) > maxContactMessageLen {
		return "Message is too long (max 10,000 characters)."
	}
	return ""
}

// ContactSubmit stores a contact form submission and re-renders the
// contact page with a confirmation (or the validation error).
func (f *PublicForms) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	message := strings.TrimSpace(r.FormValue("message"))

	if msg := validateContactForm(name, email, message); msg != "" {
		f.renderContact(w, map[string]any{"Error": msg}, http.StatusBadRequest)
		return
	}

	if _, err := f.submissions.Create(&models.FormSubmission{
		Name:    name,
		Email:   email,
		Message: message,
	}); err != nil {
		slog.Error("store submission failed", "error", err)
		f.renderContact(w, map[string]any{"Error": "Something went wrong. Please try again later."}, http.StatusInternalServerError)
		return
	}

	f.renderContact(w, map[string]any{"Sent": true}, http.StatusOK)
}

func (f *PublicForms) renderContact(w http.ResponseWriter, data map[string]any, status int) {
	html, err := f.renderer.Render("contact", &render.PageData{
		Title: "Contact",
		Data:  data,
	})
	if err != nil {
		slog.Error("render contact failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(html)
}

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewsletterSubscribe adds an email to the newsletter list. An address
// that previously unsubscribed is reactivated.
func (f *PublicForms) NewsletterSubscribe(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sub, err := f.subscribers.Subscribe(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		slog.Error("subscribe failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status": sub.Status,
		"email":  sub.Email,
	})
}

// NewsletterUnsubscribe marks an address unsubscribed. Unknown addresses
// get the same response so the endpoint reveals nothing about the list.
func (f *PublicForms) NewsletterUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, err := f.subscribers.SetStatusByEmail(strings.ToLower(strings.TrimSpace(req.Email)), models.SubscriberUnsubscribed)
	if err != nil {
		slog.Error("unsubscribe failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}
