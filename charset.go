// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultCharset is used for every read when settings leave charset empty.
const DefaultCharset = "utf8"

// ResolveCharset maps an encoding label such as "utf8" or "latin1" to its encoding.
func ResolveCharset(label string) (encoding.Encoding, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		label = DefaultCharset
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownCharset, label)
	}

	return enc, nil
}

// decodeText converts raw file bytes to string using enc.
func decodeText(enc encoding.Encoding, data []byte) (string, error) {
	if enc == nil {
		return string(data), nil
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecodeSource, err)
	}

	return string(decoded), nil
}
