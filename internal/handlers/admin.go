// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"craftpress/internal/cache"
	"craftpress/internal/mediasync"
	"craftpress/internal/storage"
	"craftpress/internal/store"
)

// Admin groups all admin API handlers and their dependencies.
// storageClient and syncer may be nil if object storage is not configured.
type Admin struct {
	posts       *store.PostStore
	authors     *store.AuthorStore
	media       *store.MediaStore
	reviews     *store.ReviewStore
	submissions *store.SubmissionStore
	subscribers *store.SubscriberStore
	portfolio   *store.PortfolioStore
	products    *store.ProductStore

	storageClient *storage.Client
	syncer        *mediasync.Syncer
	pageCache     *cache.PageCache
}

// NewAdmin creates the Admin handler group with the given dependencies.
func NewAdmin(
	posts *store.PostStore,
	authors *store.AuthorStore,
	media *store.MediaStore,
	reviews *store.ReviewStore,
	submissions *store.SubmissionStore,
	subscribers *store.SubscriberStore,
	portfolio *store.PortfolioStore,
	products *store.ProductStore,
	storageClient *storage.Client,
	syncer *mediasync.Syncer,
	pageCache *cache.PageCache,
) *Admin {
	return &Admin{
		posts:         posts,
		authors:       authors,
		media:         media,
		reviews:       reviews,
		submissions:   submissions,
		subscribers:   subscribers,
		portfolio:     portfolio,
		products:      products,
		storageClient: storageClient,
		syncer:        syncer,
		pageCache:     pageCache,
	}
}

// invalidatePages drops the whole public page cache. Called after any
// mutation that can change rendered output; pages re-render lazily.
func (a *Admin) invalidatePages(r *http.Request) {
	if a.pageCache != nil {
		a.pageCache.InvalidateAll(r.Context())
	}
}

// DashboardStats returns the aggregate counts shown on the admin dashboard.
// Individual count failures are logged and reported as zero rather than
// failing the whole response.
func (a *Admin) DashboardStats(w http.ResponseWriter, r *http.Request) {
	logCount := func(what string, err error) {
		if err != nil {
			slog.Error("dashboard count failed", "stat", what, "error", err)
		}
	}

	postTotal, postPublished, err := a.posts.Count()
	logCount("posts", err)
	mediaCount, err := a.media.Count()
	logCount("media", err)
	pendingReviews, err := a.reviews.CountPending()
	logCount("reviews", err)
	unprocessed, err := a.submissions.CountUnprocessed()
	logCount("submissions", err)
	activeSubs, err := a.subscribers.CountActive()
	logCount("subscribers", err)
	projectCount, err := a.portfolio.CountProjects()
	logCount("projects", err)
	productCount, err := a.products.Count()
	logCount("products", err)

	respondJSON(w, http.StatusOK, map[string]int{
		"posts":                   postTotal,
		"posts_published":         postPublished,
		"media":                   mediaCount,
		"reviews_pending":         pendingReviews,
		"submissions_unprocessed": unprocessed,
		"subscribers_active":      activeSubs,
		"portfolio_projects":      projectCount,
		"products":                productCount,
	})
}
