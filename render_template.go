// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// templateFS stores built-in structure and base templates embedded into the package.
//
//go:embed templates/*.gotmpl templates/base.html templates/base.md
var templateFS embed.FS

// structureTemplateFiles maps formats to their header/body template files.
var structureTemplateFiles = map[OutputFormat]string{
	FormatHTML:     "templates/html.gotmpl",
	FormatMarkdown: "templates/markdown.gotmpl",
}

// builtInBaseTemplateFiles maps formats to embedded base documents.
var builtInBaseTemplateFiles = map[OutputFormat]string{
	FormatHTML:     "templates/base.html",
	FormatMarkdown: "templates/base.md",
}

// BuiltinTemplateNames returns names of all built-in base templates.
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtInBaseTemplateFiles))
	for format := range builtInBaseTemplateFiles {
		names = append(names, string(format))
	}

	sort.Strings(names)
	return names
}

// BuiltinTemplate returns the built-in base template for a format name.
func BuiltinTemplate(name string) (string, error) {
	format, err := ParseOutputFormat(name)
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, strings.TrimSpace(name))
	}

	path, ok := builtInBaseTemplateFiles[format]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, format)
	}

	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	return string(data), nil
}

// structureTemplate parses the embedded header/body template for format.
func structureTemplate(format OutputFormat) (*template.Template, error) {
	path, ok := structureTemplateFiles[format]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, format)
	}

	data, err := templateFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	parsed, err := template.New(string(format)).Funcs(templateFuncs()).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParseBuiltinTemplate, format, err)
	}

	return parsed, nil
}

// templateFuncs provides utility functions available inside structure templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"slug": Slug,
	}
}
