// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacriticals covers the Combining Diacritical Marks block (U+0300..U+036F).
var combiningDiacriticals = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0300, Hi: 0x036f, Stride: 1},
	},
}

// Slug converts display text into an anchor id.
//
// Text is decomposed (NFD), combining diacritical marks are dropped, every
// space becomes a hyphen and the result is lowercased. Distinct inputs may
// produce the same slug; collisions are not resolved.
func Slug(text string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningDiacriticals)))

	stripped, _, err := transform.String(stripper, text)
	if err != nil {
		stripped = text
	}

	return strings.ToLower(strings.ReplaceAll(stripped, " ", "-"))
}
