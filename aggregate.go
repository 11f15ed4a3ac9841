// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

// Entry is one session example inside a category.
type Entry struct {
	Session string
	Text    string
}

// Category is a named, ordered group of entries.
type Category struct {
	Name    string
	Entries []Entry
}

// CategoryMap groups examples by category, keeping first-seen category order
// and discovery order of entries. The zero value is ready to use.
type CategoryMap struct {
	categories []Category
	index      map[string]int
}

// Aggregate folds examples into a CategoryMap in a single pass.
func Aggregate(examples []Example) CategoryMap {
	var categories CategoryMap
	for _, example := range examples {
		categories.Add(example)
	}

	return categories
}

// Add appends example to its category, creating the category on first use.
func (categories *CategoryMap) Add(example Example) {
	if categories.index == nil {
		categories.index = make(map[string]int)
	}

	position, exists := categories.index[example.Category]
	if !exists {
		position = len(categories.categories)
		categories.index[example.Category] = position
		categories.categories = append(categories.categories, Category{Name: example.Category})
	}

	category := &categories.categories[position]
	category.Entries = append(category.Entries, Entry{Session: example.Session, Text: example.Text})
}

// Len returns number of categories.
func (categories CategoryMap) Len() int {
	return len(categories.categories)
}

// ExampleCount returns number of entries across all categories.
func (categories CategoryMap) ExampleCount() int {
	total := 0
	for _, category := range categories.categories {
		total += len(category.Entries)
	}

	return total
}

// Names returns category names in map order.
func (categories CategoryMap) Names() []string {
	names := make([]string, 0, len(categories.categories))
	for _, category := range categories.categories {
		names = append(names, category.Name)
	}

	return names
}

// Lookup returns a copy of entries for category name.
func (categories CategoryMap) Lookup(name string) ([]Entry, bool) {
	position, exists := categories.index[name]
	if !exists {
		return nil, false
	}

	return append([]Entry(nil), categories.categories[position].Entries...), true
}

// Categories returns a deep copy of categories in map order.
func (categories CategoryMap) Categories() []Category {
	out := make([]Category, 0, len(categories.categories))
	for _, category := range categories.categories {
		out = append(out, Category{
			Name:    category.Name,
			Entries: append([]Entry(nil), category.Entries...),
		})
	}

	return out
}
