// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
)

// Base template placeholder tokens. Only the first occurrence of each is replaced.
const (
	PlaceholderCSS    = "[[CSS]]"
	PlaceholderHeader = "[[HEADER]]"
	PlaceholderBody   = "[[BODY]]"
)

// defaultOutputNames is joined to output paths that do not name a document file.
var defaultOutputNames = map[OutputFormat]string{
	FormatHTML:     "guidebook.html",
	FormatMarkdown: "guidebook.md",
}

// documentExtensions lists file extensions recognized as documents per format.
var documentExtensions = map[OutputFormat][]string{
	FormatHTML:     {".html", ".htm"},
	FormatMarkdown: {".md", ".markdown"},
}

// placeholderHit is the first position of one placeholder in base template text.
type placeholderHit struct {
	at    int
	token string
	value string
}

// Compose substitutes style and structure into base template text.
// Tokens are located in base only, so substituted text is never scanned again.
func Compose(base, style string, structure Structure, format OutputFormat) string {
	replacements := []placeholderHit{
		{token: PlaceholderCSS, value: styleBlock(style, format)},
		{token: PlaceholderHeader, value: structure.Header},
		{token: PlaceholderBody, value: structure.Body},
	}

	hits := make([]placeholderHit, 0, len(replacements))
	for _, replacement := range replacements {
		if at := strings.Index(base, replacement.token); at >= 0 {
			replacement.at = at
			hits = append(hits, replacement)
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].at < hits[j].at })

	var builder strings.Builder
	builder.Grow(len(base) + len(style) + len(structure.Header) + len(structure.Body))

	last := 0
	for _, hit := range hits {
		builder.WriteString(base[last:hit.at])
		builder.WriteString(hit.value)
		last = hit.at + len(hit.token)
	}
	builder.WriteString(base[last:])

	document := builder.String()

	if format == FormatMarkdown {
		return ensureTrailingNewline(normalizeMarkdownOutput(document))
	}

	return document
}

// styleBlock wraps style text into an inline style element.
// Markdown documents omit the element when style is blank.
func styleBlock(style string, format OutputFormat) string {
	if format == FormatMarkdown && strings.TrimSpace(style) == "" {
		return ""
	}

	return "<style>" + style + "</style>"
}

// LoadStyle reads style sheet text with the selected charset.
func LoadStyle(path string, enc encoding.Encoding) (string, error) {
	return readTextResource(path, enc, ErrStyleNotFound)
}

// LoadBaseTemplate returns custom base template from path, or the built-in one when path is empty.
func LoadBaseTemplate(path string, format OutputFormat, enc encoding.Encoding) (string, error) {
	if strings.TrimSpace(path) == "" {
		return BuiltinTemplate(string(format))
	}

	return readTextResource(path, enc, ErrTemplateNotFound)
}

// readTextResource reads and decodes a required file, mapping a missing path to notFound.
func readTextResource(path string, enc encoding.Encoding, notFound error) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", notFound, path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", notFound, absPath)
		}

		return "", fmt.Errorf("%w %q: %w", ErrReadResource, absPath, err)
	}

	text, err := decodeText(enc, data)
	if err != nil {
		return "", fmt.Errorf("resource %q: %w", absPath, err)
	}

	return text, nil
}

// ResolveOutputPath returns absolute output file path for format.
// When output does not end with a document extension, the default file name is appended.
func ResolveOutputPath(output string, format OutputFormat) (string, error) {
	outputPath, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("%w: resolve output %q: %w", ErrConfiguration, output, err)
	}

	extension := strings.ToLower(filepath.Ext(outputPath))
	for _, known := range documentExtensions[format] {
		if extension == known {
			return outputPath, nil
		}
	}

	return filepath.Join(outputPath, defaultOutputNames[format]), nil
}

// WriteDocument writes document to path, creating missing parent directories.
func WriteDocument(path, document string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteOutput, path, err)
	}

	if err := os.WriteFile(path, []byte(document), 0o600); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteOutput, path, err)
	}

	return nil
}
