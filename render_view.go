// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import "strings"

// minFenceLength is the shortest markdown code fence.
const minFenceLength = 3

// structureView is the root view model passed to structure templates.
type structureView struct {
	Language   string
	Categories []categoryView
}

// categoryView represents one category section with its navigation anchor.
type categoryView struct {
	Name    string
	Slug    string
	Entries []entryView
}

// entryView represents one session example inside a category.
type entryView struct {
	Session string
	Slug    string
	Text    string
	// Fence is a backtick fence longer than any backtick run in Text.
	Fence string
}

// buildStructureView converts categories into template view model in map order.
func buildStructureView(categories CategoryMap, opt RenderOptions) structureView {
	view := structureView{
		Language:   normalizeCodeLanguage(opt.CodeLanguage),
		Categories: make([]categoryView, 0, categories.Len()),
	}

	for _, category := range categories.categories {
		item := categoryView{
			Name:    category.Name,
			Slug:    Slug(category.Name),
			Entries: make([]entryView, 0, len(category.Entries)),
		}

		for _, entry := range category.Entries {
			item.Entries = append(item.Entries, entryView{
				Session: entry.Session,
				Slug:    Slug(entry.Session),
				Text:    entry.Text,
				Fence:   codeFence(entry.Text),
			})
		}

		view.Categories = append(view.Categories, item)
	}

	return view
}

// codeFence returns backtick fence that cannot be closed by text content.
func codeFence(text string) string {
	longest := 0
	current := 0
	for _, r := range text {
		if r == '`' {
			current++
			longest = max(longest, current)
			continue
		}

		current = 0
	}

	return strings.Repeat("`", max(minFenceLength, longest+1))
}
