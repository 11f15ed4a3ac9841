// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import (
	"fmt"
	"strings"
)

const (
	// StartMarker opens an example block inside a source comment.
	StartMarker = "/*GUIDE"
	// EndMarker closes an example block at its first occurrence after StartMarker.
	EndMarker = "*/"
	// metadataSeparator splits example header into category and session.
	metadataSeparator = "|"
)

// Example is one example block extracted from a source file.
type Example struct {
	Category string
	Session  string
	Text     string
}

// Extract parses every example block found in file text.
//
// Blocks without EndMarker and blocks with no content are dropped. A block
// whose first non-blank line is not CATEGORY|SESSION fails the whole call
// with ErrMetadataFormat.
func Extract(text string) ([]Example, error) {
	if !strings.Contains(text, StartMarker) {
		return nil, nil
	}

	fragments := strings.Split(text, StartMarker)[1:]
	examples := make([]Example, 0, len(fragments))
	for _, fragment := range fragments {
		end := strings.Index(fragment, EndMarker)
		if end < 0 {
			continue
		}

		if strings.TrimSpace(fragment[:end]) == "" {
			continue
		}

		example, err := parseBlock(fragment[:end])
		if err != nil {
			return nil, err
		}

		examples = append(examples, example)
	}

	return examples, nil
}

// parseBlock converts one truncated, non-blank block into an Example.
func parseBlock(block string) (Example, error) {
	separator := lineSeparator(block)
	lines := nonBlankLines(strings.Split(block, separator))
	header := lines[0]
	category, session, err := parseHeader(header)
	if err != nil {
		return Example{}, err
	}

	return Example{
		Category: category,
		Session:  session,
		Text:     strings.Join(lines[1:], separator),
	}, nil
}

// parseHeader splits header line into trimmed category and session.
func parseHeader(header string) (string, string, error) {
	parts := strings.Split(header, metadataSeparator)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrMetadataFormat, strings.TrimSpace(header))
	}

	category := strings.TrimSpace(parts[0])
	session := strings.TrimSpace(parts[1])
	if category == "" || session == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMetadataFormat, strings.TrimSpace(header))
	}

	return category, session, nil
}

// lineSeparator returns CRLF when block uses Windows line endings, LF otherwise.
func lineSeparator(block string) string {
	if strings.Contains(block, "\r\n") {
		return "\r\n"
	}

	return "\n"
}

// nonBlankLines drops empty and whitespace-only lines while keeping order.
func nonBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		out = append(out, line)
	}

	return out
}
