// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	t.Parallel()

	settings, err := ParseSettings([]byte(`
style: dist/style.css
source: src
output: docs
charset: latin1
type: md
template: base.md
language: css
ignore:
  - "*.min.css"
  - node_modules
workers: 4
`))
	require.NoError(t, err)
	assert.Equal(t, Settings{
		Style:    "dist/style.css",
		Source:   "src",
		Output:   "docs",
		Charset:  "latin1",
		Type:     "md",
		Template: "base.md",
		Language: "css",
		Ignore:   []string{"*.min.css", "node_modules"},
		Workers:  4,
	}, settings)
}

func TestParseSettingsEmptyDocument(t *testing.T) {
	t.Parallel()

	settings, err := ParseSettings(nil)
	require.NoError(t, err)
	assert.Equal(t, Settings{}, settings)
}

func TestParseSettingsRejectsUnknownField(t *testing.T) {
	t.Parallel()

	_, err := ParseSettings([]byte("style: a.css\nstyles: b.css\n"))
	require.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, ErrLoadSettings)
}

func TestLoadSettingsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "guidebook.yaml", "source: src\n")

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "src", settings.Source)

	_, err = LoadSettingsFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, ErrLoadSettings)
}

func TestSettingsApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		EnvStyle:    "env.css",
		EnvSource:   "env-src",
		EnvCharset:  "latin1",
		EnvType:     "markdown",
		EnvTemplate: "   ",
	}

	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}

	settings := Settings{Style: "file.css", Output: "docs", Template: "base.html"}.ApplyEnv(lookup)
	assert.Equal(t, Settings{
		Style:    "env.css",
		Source:   "env-src",
		Output:   "docs",
		Charset:  "latin1",
		Type:     FormatMarkdown,
		Template: "base.html",
	}, settings)
}

func TestSettingsNormalizeDefaults(t *testing.T) {
	t.Parallel()

	settings, err := Settings{Style: "s.css", Source: "src", Output: "docs", Charset: " UTF8 "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, settings.Type)
	assert.Equal(t, "utf8", settings.Charset)
	assert.Equal(t, "markup", settings.Language)

	settings, err = Settings{Style: "s.css", Source: "src", Output: "docs", Type: "MD"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, settings.Type)
	assert.Equal(t, DefaultCharset, settings.Charset)
}

func TestSettingsNormalizeReportsAllMissingFields(t *testing.T) {
	t.Parallel()

	_, err := Settings{Source: "src"}.Normalize()
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "missing style, output")
}

func TestSettingsNormalizeRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	valid := Settings{Style: "s.css", Source: "src", Output: "docs"}

	cases := map[string]struct {
		mutate func(*Settings)
		target error
	}{
		"format":  {func(s *Settings) { s.Type = "pdf" }, ErrUnsupportedFormat},
		"charset": {func(s *Settings) { s.Charset = "klingon-8" }, ErrUnknownCharset},
		"workers": {func(s *Settings) { s.Workers = -1 }, ErrConfiguration},
		"ignore":  {func(s *Settings) { s.Ignore = []string{"*.min.css", "skip[.css"} }, filepath.ErrBadPattern},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			settings := valid
			tc.mutate(&settings)

			_, err := settings.Normalize()
			require.ErrorIs(t, err, ErrConfiguration)
			assert.ErrorIs(t, err, tc.target)
		})
	}
}
