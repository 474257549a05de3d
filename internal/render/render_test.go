// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"strings"
	"testing"

	"craftpress/internal/models"
)

func TestNewParsesAllTemplates(t *testing.T) {
	r, err := New("Test Site")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, page := range []string{"home", "post", "portfolio", "products", "contact"} {
		if _, ok := r.templates[page]; !ok {
			t.Errorf("template %q not parsed", page)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New("Test Site")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Render("no-such-page", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestRenderProducts(t *testing.T) {
	r, err := New("Test Site")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	desc := "Hand stitched"
	html, err := r.Render("products", &PageData{
		Title: "Shop",
		Data: map[string]any{
			"Products": []models.Product{
				{
					Name:           "Leather Tote",
					Description:    &desc,
					BasePriceCents: 12950,
					Sizes:          []string{"S", "M"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := string(html)
	for _, want := range []string{"Leather Tote", "Hand stitched", "129.50", "S, M", "Test Site"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestRenderFallbackNotice(t *testing.T) {
	r, err := New("Test Site")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	html, err := r.Render("products", &PageData{
		Title: "Shop",
		Data:  map[string]any{"Fallback": true},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "standard catalog") {
		t.Error("fallback notice missing")
	}
}

func TestRenderContactEscapesError(t *testing.T) {
	r, err := New("Test Site")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	html, err := r.Render("contact", &PageData{
		Title: "Contact",
		Data:  map[string]any{"Error": "<script>alert(1)</script>"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(html), "<script>alert(1)</script>") {
		t.Error("error message was not escaped")
	}
}

func TestPriceFunc(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{12950, "129.50"},
	}
	for _, tt := range tests {
		if got := formatPrice(tt.cents); got != tt.want {
			t.Errorf("price(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
