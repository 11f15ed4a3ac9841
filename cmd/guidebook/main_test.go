// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// fixture holds paths of a small project on disk.
type fixture struct {
	dir    string
	style  string
	source string
	output string
}

func writeFixture(t *testing.T) fixture {
	t.Helper()

	dir := t.TempDir()
	project := fixture{
		dir:    dir,
		style:  filepath.Join(dir, "style.css"),
		source: filepath.Join(dir, "src"),
		output: filepath.Join(dir, "out"),
	}

	writeTestFile(t, project.style, ".btn { color: red; }")
	writeTestFile(t, filepath.Join(project.source, "buttons.css"),
		"/*GUIDE Buttons|Primary\n<button>OK</button>\n*/\n/*GUIDE Buttons|Secondary\n<button>No</button>\n*/\n")
	writeTestFile(t, filepath.Join(project.source, "forms", "input.css"),
		"/*GUIDE Café Menu|Crème Brûlée\n<input>\n*/\n")

	return project
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// newTestRunner returns a runner isolated from the process environment.
func newTestRunner(env map[string]string) (*cliRunner, *bytes.Buffer, *bytes.Buffer) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	runner := &cliRunner{
		stdout:      &stdout,
		stderr:      &stderr,
		programName: "guidebook",
		lookupEnv: func(key string) (string, bool) {
			value, ok := env[key]
			return value, ok
		},
	}

	return runner, &stdout, &stderr
}

func TestRunGenerateWritesHTML(t *testing.T) {
	t.Parallel()

	project := writeFixture(t)
	runner, _, stderr := newTestRunner(nil)
	code := runner.run([]string{"generate", "-s", project.style, "-i", project.source, "-o", project.output})
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(filepath.Join(project.output, "guidebook.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<style>.btn { color: red; }</style>")
	assert.Contains(t, string(data), `href="#cafe-menu">Café Menu</a>`)
	assert.Contains(t, stderr.String(), "guidebook generated")
}

func TestRunGenerateMarkdownToStdout(t *testing.T) {
	t.Parallel()

	project := writeFixture(t)
	runner, stdout, stderr := newTestRunner(nil)
	code := runner.run([]string{"generate", "-s", project.style, "-i", project.source, "-t", "md", "--stdout"})
	require.Equal(t, 0, code, stderr.String())

	assert.True(t, strings.HasPrefix(stdout.String(), "# Guide Book\n"), stdout.String())
	assert.Contains(t, stdout.String(), "- [Buttons](#buttons)\n  - [Primary](#primary)")
	assert.Contains(t, stdout.String(), "```markup\n<input>\n```")

	_, err := os.Stat(filepath.Join(project.dir, "guidebook.md"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunGenerateMalformedHeaderExitsOne(t *testing.T) {
	t.Parallel()

	project := writeFixture(t)
	writeTestFile(t, filepath.Join(project.source, "broken.css"), "/*GUIDE OnlyOnePart\n<b>x</b>\n*/")

	runner, _, stderr := newTestRunner(nil)
	code := runner.run([]string{"generate", "-s", project.style, "-i", project.source, "-o", project.output})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "CATEGORY|SESSION")
	assert.Contains(t, stderr.String(), "broken.css")

	_, err := os.Stat(project.output)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunGenerateMissingSettingsExitsOne(t *testing.T) {
	t.Parallel()

	runner, _, stderr := newTestRunner(nil)
	code := runner.run([]string{"generate"})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "missing style, source, output")
}

func TestRunFlagErrorsExitTwo(t *testing.T) {
	t.Parallel()

	cases := map[string][]string{
		"unknown flag":    {"generate", "--no-such-flag"},
		"invalid choice":  {"generate", "-t", "pdf"},
		"unknown command": {"publish"},
	}

	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			runner, _, stderr := newTestRunner(nil)
			assert.Equal(t, 2, runner.run(args))
			assert.NotEmpty(t, stderr.String())
		})
	}
}

func TestRunHelpExitsZero(t *testing.T) {
	t.Parallel()

	runner, stdout, _ := newTestRunner(nil)
	assert.Equal(t, 0, runner.run([]string{"generate", "--help"}))
	assert.Contains(t, stdout.String(), "--style")
	assert.Contains(t, stdout.String(), "Examples:")
}

func TestRunSettingsFileAndFlags(t *testing.T) {
	t.Parallel()

	project := writeFixture(t)
	configPath := filepath.Join(project.dir, "guidebook.yaml")
	writeTestFile(t, configPath, "style: "+project.style+"\nsource: "+project.source+"\noutput: "+project.output+"\ntype: markdown\n")

	runner, _, stderr := newTestRunner(nil)
	override := filepath.Join(project.dir, "custom", "GUIDE.md")
	code := runner.run([]string{"generate", "-c", configPath, "-o", override})
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(override)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Guide Book"))
}

func TestRunUnknownSettingsFieldExitsOne(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "guidebook.yaml")
	writeTestFile(t, configPath, "stlye: typo.css\n")

	runner, _, stderr := newTestRunner(nil)
	assert.Equal(t, 1, runner.run([]string{"generate", "-c", configPath}))
	assert.Contains(t, stderr.String(), "stlye")
}

func TestRunEnvFile(t *testing.T) {
	t.Parallel()

	project := writeFixture(t)
	envPath := filepath.Join(project.dir, "guidebook.env")
	writeTestFile(t, envPath, strings.Join([]string{
		"GUIDEBOOK_STYLE=" + project.style,
		"GUIDEBOOK_SOURCE=" + project.source,
		"GUIDEBOOK_OUTPUT=" + filepath.Join(project.dir, "from-file"),
		"GUIDEBOOK_TYPE=md",
	}, "\n"))

	processOutput := filepath.Join(project.dir, "from-process")
	runner, _, stderr := newTestRunner(map[string]string{"GUIDEBOOK_OUTPUT": processOutput})
	code := runner.run([]string{"generate", "--env-file", envPath})
	require.Equal(t, 0, code, stderr.String())

	_, err := os.Stat(filepath.Join(processOutput, "guidebook.md"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(project.dir, "from-file"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunList(t *testing.T) {
	t.Parallel()

	project := writeFixture(t)
	runner, stdout, stderr := newTestRunner(nil)
	code := runner.run([]string{"list", "-i", project.source})
	require.Equal(t, 0, code, stderr.String())

	var listed []listCategory
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &listed))
	assert.Equal(t, []listCategory{
		{
			Category: "Buttons",
			Slug:     "buttons",
			Sessions: []listSession{{Name: "Primary", Slug: "primary"}, {Name: "Secondary", Slug: "secondary"}},
		},
		{
			Category: "Café Menu",
			Slug:     "cafe-menu",
			Sessions: []listSession{{Name: "Crème Brûlée", Slug: "creme-brulee"}},
		},
	}, listed)
}

func TestRunTemplate(t *testing.T) {
	t.Parallel()

	runner, stdout, stderr := newTestRunner(nil)
	require.Equal(t, 0, runner.run([]string{"template"}), stderr.String())
	assert.Contains(t, stdout.String(), "<!DOCTYPE html>")
	assert.Contains(t, stdout.String(), "[[BODY]]")

	path := filepath.Join(t.TempDir(), "base.md")
	runner, _, stderr = newTestRunner(nil)
	require.Equal(t, 0, runner.run([]string{"template", "-t", "markdown", path}), stderr.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Guide Book"))
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run([]string{"version"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "version:  dev")
	assert.Contains(t, stdout.String(), URL)
}
