// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public marketing
// site. Templates are embedded at compile time; each page template is
// paired with the base layout. Rendered pages are returned as bytes so the
// caller can store them in the page cache.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"craftpress/internal/models"
)

//go:embed templates/public/*.html
var publicFS embed.FS

func formatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// PageData holds all data passed to public templates.
type PageData struct {
	Title    string
	SiteName string
	Data     map[string]any
}

// Renderer handles template parsing and execution for public pages.
type Renderer struct {
	templates map[string]*template.Template
	siteName  string
}

// New creates a Renderer by parsing all public templates from the embedded
// filesystem.
func New(siteName string) (*Renderer, error) {
	funcMap := template.FuncMap{
		// deref safely dereferences a string pointer for use in templates.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		// price formats cents as a decimal amount.
		"price": formatPrice,
		// stars renders a review rating as filled/empty stars.
		"stars": func(rating int) string {
			out := ""
			for i := 1; i <= 5; i++ {
				if i <= rating {
					out += "★"
				} else {
					out += "☆"
				}
			}
			return out
		},
		"raw": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	entries, err := publicFS.ReadDir("templates/public")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	r := &Renderer{
		templates: make(map[string]*template.Template),
		siteName:  siteName,
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(publicFS,
			"templates/public/base.html",
			"templates/public/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		key := name[:len(name)-len(".html")]
		r.templates[key] = tmpl
	}

	return r, nil
}

// Render executes a page template with the base layout and returns the
// resulting HTML.
func (r *Renderer) Render(page string, data *PageData) ([]byte, error) {
	tmpl, ok := r.templates[page]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", page)
	}

	if data == nil {
		data = &PageData{}
	}
	if data.SiteName == "" {
		data.SiteName = r.siteName
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

// PostView is the shape posts take inside templates: the Markdown body is
// pre-rendered to HTML by the handler.
type PostView struct {
	models.Post
	BodyHTML template.HTML
	ImageURL string
}
