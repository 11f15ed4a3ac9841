// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables applied by ApplyEnv.
const (
	EnvStyle    = "GUIDEBOOK_STYLE"
	EnvSource   = "GUIDEBOOK_SOURCE"
	EnvOutput   = "GUIDEBOOK_OUTPUT"
	EnvCharset  = "GUIDEBOOK_CHARSET"
	EnvType     = "GUIDEBOOK_TYPE"
	EnvTemplate = "GUIDEBOOK_TEMPLATE"
)

// Settings configures one generation run.
type Settings struct {
	// Style is the style sheet path injected into the base template.
	Style string `yaml:"style"`
	// Source is a file or directory scanned for example blocks.
	Source string `yaml:"source"`
	// Output is the document file path or a directory receiving the default file name.
	Output string `yaml:"output"`
	// Charset is the encoding label used for every read; defaults to "utf8".
	Charset string `yaml:"charset,omitempty"`
	// Type selects output format; defaults to html.
	Type OutputFormat `yaml:"type,omitempty"`
	// Template is an optional custom base template path.
	Template string `yaml:"template,omitempty"`
	// Language names example code language; defaults to "markup".
	Language string `yaml:"language,omitempty"`
	// Ignore holds base-name glob patterns skipped by source discovery.
	Ignore []string `yaml:"ignore,omitempty"`
	// Workers bounds parallel source reads; zero uses GOMAXPROCS.
	Workers int `yaml:"workers,omitempty"`
}

// LoadSettingsFile decodes YAML settings from path. Unknown fields are rejected.
func LoadSettingsFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w %q: %w", ErrLoadSettings, path, err)
	}

	return ParseSettings(data)
}

// ParseSettings decodes YAML settings. An empty document yields zero Settings.
func ParseSettings(data []byte) (Settings, error) {
	var settings Settings

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil {
		if errors.Is(err, io.EOF) {
			return Settings{}, nil
		}

		return Settings{}, fmt.Errorf("%w: %w: %w", ErrConfiguration, ErrLoadSettings, err)
	}

	return settings, nil
}

// ApplyEnv overrides settings with GUIDEBOOK_* variables found by lookup.
// A nil lookup uses os.LookupEnv.
func (settings Settings) ApplyEnv(lookup func(string) (string, bool)) Settings {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	overrides := []struct {
		key    string
		target *string
	}{
		{EnvStyle, &settings.Style},
		{EnvSource, &settings.Source},
		{EnvOutput, &settings.Output},
		{EnvCharset, &settings.Charset},
		{EnvTemplate, &settings.Template},
	}

	for _, override := range overrides {
		if value, ok := lookup(override.key); ok && strings.TrimSpace(value) != "" {
			*override.target = value
		}
	}

	if value, ok := lookup(EnvType); ok && strings.TrimSpace(value) != "" {
		settings.Type = OutputFormat(value)
	}

	return settings
}

// Normalize validates required fields and fills defaults.
// It performs no file system access.
func (settings Settings) Normalize() (Settings, error) {
	return settings.normalize("style", "source", "output")
}

// normalize validates named required fields plus format, charset, ignore patterns and workers.
func (settings Settings) normalize(required ...string) (Settings, error) {
	values := map[string]string{
		"style":  settings.Style,
		"source": settings.Source,
		"output": settings.Output,
	}

	var missing []string
	for _, name := range required {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return Settings{}, fmt.Errorf("%w: missing %s", ErrConfiguration, strings.Join(missing, ", "))
	}

	format, err := ParseOutputFormat(string(settings.Type))
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if _, err := ResolveCharset(settings.Charset); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if err := ValidateIgnorePatterns(settings.Ignore); err != nil {
		return Settings{}, err
	}

	if settings.Workers < 0 {
		return Settings{}, fmt.Errorf("%w: workers must not be negative, got %d", ErrConfiguration, settings.Workers)
	}

	settings.Type = format
	settings.Charset = strings.ToLower(strings.TrimSpace(settings.Charset))
	if settings.Charset == "" {
		settings.Charset = DefaultCharset
	}

	settings.Language = normalizeCodeLanguage(settings.Language)
	return settings, nil
}
