// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"strings"
	"unicode"
)

// Generate creates a URL-friendly slug from the given string: lowercase
// alphanumerics with single hyphens between words, no leading or trailing
// hyphens. Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	// Whitespace and hyphens become a single separator, flushed lazily so
	// runs collapse and the edges stay clean. Everything else non-alphanumeric
	// is dropped.
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingSep = true
		}
	}
	return b.String()
}
