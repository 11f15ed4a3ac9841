// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import "text/template"

// htmlRenderer renders navigation list items and category sections.
//
// Category, session and example text are written without escaping.
type htmlRenderer struct {
	tpl *template.Template
	opt RenderOptions
}

func newHTMLRenderer(tpl *template.Template, opt RenderOptions) Renderer {
	return &htmlRenderer{tpl: tpl, opt: opt}
}

// Format implements Renderer.
func (renderer *htmlRenderer) Format() OutputFormat {
	return FormatHTML
}

// Render implements Renderer.
func (renderer *htmlRenderer) Render(categories CategoryMap) (Structure, error) {
	return executeStructure(renderer.tpl, buildStructureView(categories, renderer.opt))
}
