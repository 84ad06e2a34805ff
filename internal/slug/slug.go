// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation for category names.
package slug

import (
	"strings"

	gslug "github.com/gosimple/slug"
)

// MaxLength is the longest slug the categories.slug column holds.
const MaxLength = 150

// Generate creates a URL-friendly slug from the given string. Accented
// letters are transliterated rather than dropped, and slugs longer than
// MaxLength are cut at the last hyphen that fits.
// Example: "Other Frameworks" → "other-frameworks"
func Generate(s string) string {
	out := gslug.Make(strings.TrimSpace(s))
	if len(out) <= MaxLength {
		return out
	}
	// Make only emits ASCII, so byte offsets are rune offsets.
	cut := out[:MaxLength]
	if i := strings.LastIndexByte(cut, '-'); i > 0 && out[MaxLength] != '-' {
		cut = cut[:i]
	}
	return strings.Trim(cut, "-")
}

// Valid reports whether s is a well-formed slug no longer than MaxLength.
func Valid(s string) bool {
	return len(s) <= MaxLength && gslug.IsSlug(s)
}
