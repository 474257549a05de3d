// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Jane O'Brien!", "jane-o-brien"},
		{"  spaces  everywhere  ", "spaces-everywhere"},
		{"UPPER-case", "upper-case"},
		{"multi---dash", "multi-dash"},
		{"100% Organic Cotton", "100-organic-cotton"},
		// Non-ASCII letters are not in [a-z0-9]; only the ASCII
		// remainder survives.
		{"éàü accents", "accents"},
		{"", ""},
		{"!!!", ""},
		{"already-a-slug", "already-a-slug"},
	}

	for _, tt := range tests {
		if got := Generate(tt.in); got != tt.want {
			t.Errorf("Generate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
