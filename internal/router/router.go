// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for
// CraftPress. Routes are organized into the JSON admin API, the auth
// endpoints, and the public marketing site.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"craftpress/internal/handlers"
	"craftpress/internal/middleware"
	"craftpress/internal/token"
)

// Rate limits for unauthenticated write endpoints.
const (
	loginRateLimit      = 10
	publicFormRateLimit = 5
	rateWindow          = time.Minute
)

// New creates the configured chi router with all middleware and route
// groups wired up. corsOrigins lists the admin dashboard origins allowed
// to make credentialed requests to the admin API.
func New(tokens *token.Manager, corsOrigins []string, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, forms *handlers.PublicForms) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.LoadSession(tokens))

	// Health check and metrics, no auth.
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Admin API: JSON in and out, CORS for separate dashboard frontends.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		// Auth endpoints. Login is rate limited per IP.
		r.Route("/auth", func(r chi.Router) {
			r.With(httprate.LimitByIP(loginRateLimit, rateWindow)).Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)

			// 2FA setup and verify require a valid token but NOT completed 2FA.
			r.Group(func(r chi.Router) {
				r.Post("/2fa/setup", auth.TwoFASetup)
				r.Post("/2fa/verify", auth.TwoFAVerify)
			})
		})

		// Authenticated admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/dashboard/stats", admin.DashboardStats)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", admin.PostsList)
				r.Post("/", admin.PostCreate)
				r.Post("/bulk-publish", admin.PostsBulkPublish)
				r.Get("/{id}", admin.PostGet)
				r.Put("/{id}", admin.PostUpdate)
				r.Delete("/{id}", admin.PostDelete)
			})

			// Author management is admin-only; editors manage content.
			r.Route("/authors", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", admin.AuthorsList)
				r.Post("/", admin.AuthorCreate)
				r.Get("/{id}", admin.AuthorGet)
				r.Put("/{id}", admin.AuthorUpdate)
				r.Delete("/{id}", admin.AuthorDelete)
			})

			r.Route("/media", func(r chi.Router) {
				r.Get("/", admin.MediaList)
				r.Post("/", admin.MediaUpload)
				r.With(middleware.RequireAdmin).Post("/sync", admin.MediaSync)
				r.Get("/{id}", admin.MediaGet)
				r.Get("/{id}/download", admin.MediaDownload)
				r.Put("/{id}", admin.MediaUpdate)
				r.Delete("/{id}", admin.MediaDelete)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", admin.ReviewsList)
				r.Post("/", admin.ReviewCreate)
				r.Get("/{id}", admin.ReviewGet)
				r.Post("/{id}/approve", admin.ReviewApprove)
				r.Post("/{id}/reject", admin.ReviewReject)
				r.Delete("/{id}", admin.ReviewDelete)
			})

			r.Route("/submissions", func(r chi.Router) {
				r.Get("/", admin.SubmissionsList)
				r.Get("/{id}", admin.SubmissionGet)
				r.Post("/{id}/processed", admin.SubmissionProcessed)
				r.Delete("/{id}", admin.SubmissionDelete)
			})

			r.Route("/subscribers", func(r chi.Router) {
				r.Get("/", admin.SubscribersList)
				r.Post("/", admin.SubscriberCreate)
				r.Get("/{id}", admin.SubscriberGet)
				r.Put("/{id}", admin.SubscriberUpdate)
				r.Delete("/{id}", admin.SubscriberDelete)
			})

			r.Route("/portfolio", func(r chi.Router) {
				r.Route("/categories", func(r chi.Router) {
					r.Get("/", admin.CategoriesList)
					r.Post("/", admin.CategoryCreate)
					r.Put("/{id}", admin.CategoryUpdate)
					r.Delete("/{id}", admin.CategoryDelete)
				})
				r.Route("/projects", func(r chi.Router) {
					r.Get("/", admin.ProjectsList)
					r.Post("/", admin.ProjectCreate)
					r.Get("/{id}", admin.ProjectGet)
					r.Put("/{id}", admin.ProjectUpdate)
					r.Delete("/{id}", admin.ProjectDelete)
				})
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", admin.ProductsList)
				r.Post("/", admin.ProductCreate)
				r.Get("/{id}", admin.ProductGet)
				r.Put("/{id}", admin.ProductUpdate)
				r.Delete("/{id}", admin.ProductDelete)
			})
		})
	})

	// Public marketing site.
	r.Get("/", public.Home)
	r.Get("/blog/{slug}", public.BlogPost)
	r.Get("/portfolio", public.Portfolio)
	r.Get("/products", public.Products)
	r.Get("/contact", public.ContactPage)

	// Public write endpoints, rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(publicFormRateLimit, rateWindow))
		r.Post("/contact", forms.ContactSubmit)
		r.Post("/newsletter/subscribe", forms.NewsletterSubscribe)
		r.Post("/newsletter/unsubscribe", forms.NewsletterUnsubscribe)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
