// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"craftpress/internal/cache"
	"craftpress/internal/fallback"
	"craftpress/internal/markdown"
	"craftpress/internal/models"
	"craftpress/internal/render"
	"craftpress/internal/storage"
	"craftpress/internal/store"
)

const (
	homePostLimit   = 10
	homeReviewLimit = 4
	publicListLimit = 100
)

// Public groups the handlers for the server-rendered marketing site.
// Pages are cached whole in Redis and re-rendered on cache miss. When the
// database is unreachable, listings degrade to the static fallback data
// instead of erroring.
type Public struct {
	renderer  *render.Renderer
	pageCache *cache.PageCache

	posts     *store.PostStore
	reviews   *store.ReviewStore
	portfolio *store.PortfolioStore
	products  *store.ProductStore
	media     *store.MediaStore

	storageClient *storage.Client
}

// NewPublic creates the Public handler group. pageCache and storageClient
// may be nil.
func NewPublic(
	renderer *render.Renderer,
	pageCache *cache.PageCache,
	posts *store.PostStore,
	reviews *store.ReviewStore,
	portfolio *store.PortfolioStore,
	products *store.ProductStore,
	media *store.MediaStore,
	storageClient *storage.Client,
) *Public {
	return &Public{
		renderer:      renderer,
		pageCache:     pageCache,
		posts:         posts,
		reviews:       reviews,
		portfolio:     portfolio,
		products:      products,
		media:         media,
		storageClient: storageClient,
	}
}

// servePage renders a page through the cache. cacheable is false for
// fallback content so a recovered database is picked up on the next hit.
func (p *Public) servePage(w http.ResponseWriter, r *http.Request, key, page string, data *render.PageData, cacheable bool) {
	if p.pageCache != nil && cacheable {
		if html, ok := p.pageCache.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(html)
			return
		}
	}

	html, err := p.renderer.Render(page, data)
	if err != nil {
		slog.Error("render page failed", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if p.pageCache != nil && cacheable {
		p.pageCache.Set(r.Context(), key, html)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// Home renders the landing page: latest published posts plus approved
// reviews. Falls back to the static post list when the database is down.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	cacheable := true

	posts, err := p.posts.ListPublished(homePostLimit)
	if err != nil {
		slog.Error("home posts query failed, using fallback", "error", err)
		posts = fallback.Posts
		cacheable = false
	}

	var reviews []models.Review
	if cacheable {
		reviews, err = p.reviews.ListApproved(homeReviewLimit)
		if err != nil {
			slog.Error("home reviews query failed", "error", err)
			reviews = nil
		}
	}

	p.servePage(w, r, "home", "home", &render.PageData{
		Title: "Home",
		Data: map[string]any{
			"Posts":   posts,
			"Reviews": reviews,
		},
	}, cacheable)
}

// BlogPost renders one published post with its Markdown body converted
// to HTML.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")

	post, err := p.posts.FindBySlug(s)
	if err != nil {
		slog.Error("post lookup failed", "slug", s, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil || !post.IsPublished() {
		http.NotFound(w, r)
		return
	}

	bodyHTML, err := markdown.ToHTML(post.Body)
	if err != nil {
		slog.Error("markdown render failed", "slug", s, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := render.PostView{Post: *post, BodyHTML: template.HTML(bodyHTML)}
	if post.FeaturedImageID != nil && p.storageClient != nil {
		if m, err := p.media.FindByID(*post.FeaturedImageID); err == nil && m != nil {
			view.ImageURL = p.storageClient.FileURL(m.S3Key)
		}
	}

	p.servePage(w, r, "blog:"+s, "post", &render.PageData{
		Title: post.Title,
		Data:  map[string]any{"Post": view},
	}, true)
}

// projectView is the shape portfolio projects take in templates.
type projectView struct {
	models.PortfolioProject
	CoverURL string
}

// Portfolio renders the project gallery, optionally filtered by a
// category slug (?category=kitchens).
func (p *Public) Portfolio(w http.ResponseWriter, r *http.Request) {
	categorySlug := r.URL.Query().Get("category")

	categories, err := p.portfolio.ListCategories()
	if err != nil {
		slog.Error("portfolio categories query failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var categoryID *uuid.UUID
	for i := range categories {
		if categories[i].Slug == categorySlug {
			categoryID = &categories[i].ID
			break
		}
	}

	published := true
	params := store.ListParams{Limit: publicListLimit}
	projects, _, err := p.portfolio.ListProjects(params, categoryID, &published)
	if err != nil {
		slog.Error("portfolio projects query failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	views := make([]projectView, 0, len(projects))
	for _, proj := range projects {
		views = append(views, projectView{
			PortfolioProject: proj,
			CoverURL:         p.coverURL(proj),
		})
	}

	key := "portfolio"
	if categorySlug != "" {
		key += ":" + categorySlug
	}
	p.servePage(w, r, key, "portfolio", &render.PageData{
		Title: "Portfolio",
		Data: map[string]any{
			"Categories": categories,
			"Projects":   views,
		},
	}, true)
}

// coverURL picks the serving URL for a project's cover image: the image
// flagged as cover, else the first by sort order.
func (p *Public) coverURL(proj models.PortfolioProject) string {
	if p.storageClient == nil || len(proj.Images) == 0 {
		return ""
	}

	chosen := proj.Images[0]
	for _, img := range proj.Images {
		if img.ImageType == models.ImageTypeCover {
			chosen = img
			break
		}
	}

	m, err := p.media.FindByID(chosen.MediaID)
	if err != nil || m == nil {
		return ""
	}
	if m.ThumbS3Key != nil {
		return p.storageClient.FileURL(*m.ThumbS3Key)
	}
	return p.storageClient.FileURL(m.S3Key)
}

// Products renders the shop catalog. Falls back to the static catalog
// when the database is down.
func (p *Public) Products(w http.ResponseWriter, r *http.Request) {
	cacheable := true
	usedFallback := false

	products, err := p.products.ListPublished()
	if err != nil {
		slog.Error("products query failed, using fallback", "error", err)
		products = fallback.Products
		usedFallback = true
		cacheable = false
	}

	p.servePage(w, r, "products", "products", &render.PageData{
		Title: "Shop",
		Data: map[string]any{
			"Products": products,
			"Fallback": usedFallback,
		},
	}, cacheable)
}

// ContactPage renders the contact form.
func (p *Public) ContactPage(w http.ResponseWriter, r *http.Request) {
	p.servePage(w, r, "contact", "contact", &render.PageData{
		Title: "Contact",
		Data:  map[string]any{},
	}, true)
}
