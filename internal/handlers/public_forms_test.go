// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"
)

func TestValidateContactForm(t *testing.T) {
	tests := []struct {
		name    string
		n, e, m string
		want    string
	}{
		{"valid", "Jane", "jane@example.com", "Hello there", ""},
		{"missing name", "", "jane@example.com", "Hello", "Name is required."},
		{"name too long", strings.Repeat("a", maxContactNameLen+1), "jane@example.com", "Hello", "Name is too long (max 200 characters)."},
		{"empty email", "Jane", "", "Hello", "A valid email address is required."},
		{"bad email", "Jane", "not-an-address", "Hello", "A valid email address is required."},
		{"missing message", "Jane", "jane@example.com", "", "Message is required."},
		{"message too long", "Jane", "jane@example.com", strings.Repeat("x", maxContactMessageLen+1), "Message is too long (max 10,000 characters)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateContactForm(tt.n, tt.e, tt.m); got != tt.want {
				t.Errorf("validateContactForm() = %q, want %q", got, tt.want)
			}
		})
	}
}
