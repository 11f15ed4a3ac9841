// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import "errors"

var (
	// ErrConfiguration is returned when settings are missing required fields or hold invalid values.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrLoadSettings is returned when a settings file cannot be read or decoded.
	ErrLoadSettings = errors.New("load settings")
	// ErrUnsupportedFormat is returned when requested output format is not registered.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrUnknownCharset is returned when charset label does not name a known text encoding.
	ErrUnknownCharset = errors.New("unknown charset")

	// ErrResourceNotFound is matched by every missing style, source or template error.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrStyleNotFound is returned when style sheet path does not resolve.
	ErrStyleNotFound = resourceError("style file not found")
	// ErrSourceNotFound is returned when source file or directory does not resolve.
	ErrSourceNotFound = resourceError("source not found")
	// ErrTemplateNotFound is returned when custom base template path does not resolve.
	ErrTemplateNotFound = resourceError("base template not found")

	// ErrMetadataFormat is returned when example header line does not match CATEGORY|SESSION.
	ErrMetadataFormat = errors.New("example header does not match CATEGORY|SESSION")
	// ErrTraversalCycle is returned when source traversal re-enters a directory on its own path.
	ErrTraversalCycle = errors.New("source traversal cycle")

	// ErrReadSource is returned when a source file or directory listing cannot be read.
	ErrReadSource = errors.New("read source")
	// ErrDecodeSource is returned when file bytes cannot be decoded with the selected charset.
	ErrDecodeSource = errors.New("decode source")
	// ErrReadResource is returned when style or template file exists but cannot be read.
	ErrReadResource = errors.New("read resource")
	// ErrWriteOutput is returned when the composed document cannot be written.
	ErrWriteOutput = errors.New("write output")

	// ErrExecuteTemplate is returned when structure template execution fails.
	ErrExecuteTemplate = errors.New("execute template")
	// ErrUnknownBuiltinTemplate is returned when requested built-in template name is not registered.
	ErrUnknownBuiltinTemplate = errors.New("unknown built-in template")
	// ErrReadBuiltinTemplate is returned when built-in template file loading fails.
	ErrReadBuiltinTemplate = errors.New("read built-in template")
	// ErrParseBuiltinTemplate is returned when built-in template parsing fails.
	ErrParseBuiltinTemplate = errors.New("parse built-in template")
)

// notFoundError is a sentinel that also matches ErrResourceNotFound.
type notFoundError struct {
	message string
}

func resourceError(message string) error {
	return &notFoundError{message: message}
}

// Error implements error.
func (err *notFoundError) Error() string {
	return err.message
}

// Is reports ErrResourceNotFound as a match.
func (err *notFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}
