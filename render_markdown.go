// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import (
	"strings"
	"text/template"
)

// markdownRenderer renders a nested link list and heading/fence sections.
type markdownRenderer struct {
	tpl *template.Template
	opt RenderOptions
}

func newMarkdownRenderer(tpl *template.Template, opt RenderOptions) Renderer {
	return &markdownRenderer{tpl: tpl, opt: opt}
}

// Format implements Renderer.
func (renderer *markdownRenderer) Format() OutputFormat {
	return FormatMarkdown
}

// Render implements Renderer.
func (renderer *markdownRenderer) Render(categories CategoryMap) (Structure, error) {
	structure, err := executeStructure(renderer.tpl, buildStructureView(categories, renderer.opt))
	if err != nil {
		return Structure{}, err
	}

	structure.Header = normalizeMarkdownOutput(structure.Header)
	structure.Body = normalizeMarkdownOutput(structure.Body)
	return structure, nil
}

// normalizeMarkdownOutput collapses extra blank lines and trailing spaces outside fenced blocks.
// Fenced lines are kept byte for byte, including CR line endings of example text.
func normalizeMarkdownOutput(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	fence := ""
	blankCount := 0
	for _, rawLine := range lines {
		if fence != "" {
			out = append(out, rawLine)
			if strings.TrimSpace(rawLine) == fence {
				fence = ""
			}

			continue
		}

		line := strings.TrimRight(rawLine, " \t\r")
		trimmed := strings.TrimSpace(line)

		if opening := fenceMarker(trimmed); opening != "" {
			fence = opening
			out = append(out, line)
			blankCount = 0
			continue
		}

		if trimmed == "" {
			if blankCount == 0 {
				out = append(out, "")
			}

			blankCount++
			continue
		}

		blankCount = 0
		out = append(out, line)
	}

	return strings.Trim(strings.Join(out, "\n"), "\n")
}

// fenceMarker returns leading backtick run when line opens a code fence.
func fenceMarker(line string) string {
	count := 0
	for count < len(line) && line[count] == '`' {
		count++
	}

	if count < minFenceLength {
		return ""
	}

	return line[:count]
}

// ensureTrailingNewline guarantees exactly one trailing newline in output.
func ensureTrailingNewline(value string) string {
	value = strings.TrimRight(value, "\n")
	return value + "\n"
}
