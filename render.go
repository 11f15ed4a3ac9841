// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
)

const (
	// FormatHTML renders a navigable HTML page. It is the default format.
	FormatHTML OutputFormat = "html"
	// FormatMarkdown renders a CommonMark document with HTML anchors.
	FormatMarkdown OutputFormat = "markdown"
)

// defaultCodeLanguage is used for code block class and fence info string.
const defaultCodeLanguage = "markup"

// OutputFormat selects the Renderer implementation.
type OutputFormat string

// formatAliases maps accepted spellings to canonical formats.
var formatAliases = map[string]OutputFormat{
	"":         FormatHTML,
	"html":     FormatHTML,
	"htm":      FormatHTML,
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
}

// rendererFactories holds one constructor per supported format.
var rendererFactories = map[OutputFormat]func(*template.Template, RenderOptions) Renderer{
	FormatHTML:     newHTMLRenderer,
	FormatMarkdown: newMarkdownRenderer,
}

// Structure is the rendered navigation (Header) and content (Body) pair.
type Structure struct {
	Header string
	Body   string
}

// RenderOptions tunes structure rendering shared by every format.
type RenderOptions struct {
	// CodeLanguage names the language of example code; defaults to "markup".
	CodeLanguage string
}

// Renderer turns a CategoryMap into a Structure for one output format.
type Renderer interface {
	Format() OutputFormat
	Render(categories CategoryMap) (Structure, error)
}

// ParseOutputFormat validates and normalizes an output format name.
// Empty value selects FormatHTML.
func ParseOutputFormat(value string) (OutputFormat, error) {
	format, ok := formatAliases[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, value)
	}

	return format, nil
}

// Formats returns all supported output formats in sorted order.
func Formats() []OutputFormat {
	formats := make([]OutputFormat, 0, len(rendererFactories))
	for format := range rendererFactories {
		formats = append(formats, format)
	}

	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// NewRenderer returns the renderer registered for format.
func NewRenderer(format OutputFormat, opt RenderOptions) (Renderer, error) {
	format, err := ParseOutputFormat(string(format))
	if err != nil {
		return nil, err
	}

	factory, ok := rendererFactories[format]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}

	structureTemplate, err := structureTemplate(format)
	if err != nil {
		return nil, err
	}

	return factory(structureTemplate, opt), nil
}

// Render builds document structure for categories in selected format with default options.
func Render(format OutputFormat, categories CategoryMap) (Structure, error) {
	renderer, err := NewRenderer(format, RenderOptions{})
	if err != nil {
		return Structure{}, err
	}

	return renderer.Render(categories)
}

// executeStructure runs the "header" and "body" definitions of tpl against view.
func executeStructure(tpl *template.Template, view structureView) (Structure, error) {
	var header strings.Builder
	if err := tpl.ExecuteTemplate(&header, "header", view); err != nil {
		return Structure{}, fmt.Errorf("%w header: %w", ErrExecuteTemplate, err)
	}

	var body strings.Builder
	if err := tpl.ExecuteTemplate(&body, "body", view); err != nil {
		return Structure{}, fmt.Errorf("%w body: %w", ErrExecuteTemplate, err)
	}

	return Structure{
		Header: strings.TrimSpace(header.String()),
		Body:   strings.TrimSpace(body.String()),
	}, nil
}

// normalizeCodeLanguage trims language and falls back to default.
func normalizeCodeLanguage(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultCodeLanguage
	}

	return value
}
