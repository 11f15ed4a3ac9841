// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import "log/slog"

// Canonical log attribute keys shared by the library and the CLI.
const (
	KeyRunID      = "run_id"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyFormat     = "format"
	KeyFiles      = "files"
	KeyExamples   = "examples"
	KeyCategories = "categories"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// discardLogger is used when callers do not provide a logger.
var discardLogger = slog.New(slog.DiscardHandler)

// ErrorAttr returns err as a log attribute.
func ErrorAttr(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}

	return slog.String(KeyError, err.Error())
}
