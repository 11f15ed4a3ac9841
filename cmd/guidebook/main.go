// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

// guidebook generates a living style guide from example blocks in source comments.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/guidebook"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/guidebook"
	_buildTime string
)

// defaultSettingsFile is loaded when present and --config is not given.
const defaultSettingsFile = "guidebook.yaml"

// cliOptions describes guidebook CLI flags and subcommands.
type cliOptions struct {
	Version  versionCommand  `command:"version" description:"Print version information"`
	Generate generateCommand `command:"generate" description:"Generate guide book document from source examples"`
	Watch    watchCommand    `command:"watch" description:"Generate guide book and regenerate on source changes"`
	List     listCommand     `command:"list" description:"List discovered categories and sessions as YAML"`
	Template templateCommand `command:"template" description:"Print built-in base template"`
}

// settingsFlags groups flags mapped onto guidebook.Settings.
type settingsFlags struct {
	ConfigPath string   `short:"c" long:"config" description:"YAML settings file (default: guidebook.yaml when present)"`
	EnvFile    string   `long:"env-file" description:"Dotenv file with GUIDEBOOK_* variables" default:".env"`
	Style      string   `short:"s" long:"style" description:"Built style sheet injected into the document"`
	Source     string   `short:"i" long:"source" description:"Source file or directory with example blocks"`
	Output     string   `short:"o" long:"output" description:"Output document file or directory"`
	Charset    string   `long:"charset" description:"Charset used for every read (default: utf8)"`
	Type       string   `short:"t" long:"type" description:"Output format" choice:"html" choice:"markdown" choice:"md"`
	Template   string   `long:"template" description:"Custom base template with [[CSS]], [[HEADER]] and [[BODY]] tokens"`
	Language   string   `short:"l" long:"language" description:"Example code language (default: markup)"`
	Ignore     []string `short:"x" long:"ignore" description:"Skip entries whose base name matches glob (repeatable)"`
	Workers    int      `short:"j" long:"workers" description:"Parallel source reads (default: GOMAXPROCS)"`
}

// logFlags groups logging flags.
type logFlags struct {
	Verbose   bool   `short:"v" long:"verbose" description:"Enable debug logging"`
	LogFormat string `long:"log-format" description:"Log output format" choice:"text" choice:"json" default:"text"`
}

// generateCommand builds and writes the document once.
type generateCommand struct {
	runner *cliRunner

	Settings settingsFlags `group:"Settings"`
	Log      logFlags      `group:"Logging"`
	Stdout   bool          `long:"stdout" description:"Print document to stdout instead of writing output file"`
}

// Execute runs generate subcommand.
func (command *generateCommand) Execute(_ []string) error {
	settings, err := command.runner.resolveSettings(command.Settings)
	if err != nil {
		return err
	}

	return command.runner.runGenerate(settings, command.runner.newLogger(command.Log), command.Stdout)
}

// listCommand prints discovered category map.
type listCommand struct {
	runner *cliRunner

	Settings settingsFlags `group:"Settings"`
	Log      logFlags      `group:"Logging"`
}

// Execute runs list subcommand.
func (command *listCommand) Execute(_ []string) error {
	settings, err := command.runner.resolveSettings(command.Settings)
	if err != nil {
		return err
	}

	return command.runner.runList(settings, command.runner.newLogger(command.Log))
}

// templateCommand exports built-in base template.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	Type string `short:"t" long:"type" description:"Output format" choice:"html" choice:"markdown" choice:"md" default:"html"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	return command.runner.runTemplate(command.Type, command.Args.Output)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	command.runner.printVersionInfo()
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	ctx         context.Context
	stdout      io.Writer
	stderr      io.Writer
	lookupEnv   func(string) (string, bool)
	programName string
}

// listCategory is one category entry of list output.
type listCategory struct {
	Category string        `yaml:"category"`
	Slug     string        `yaml:"slug"`
	Sessions []listSession `yaml:"sessions"`
}

// listSession is one session entry of list output.
type listSession struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runWithContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithContext(context.Background(), args, stdout, stderr)
}

// runWithContext executes CLI logic bound to ctx, for signal handling and tests.
func runWithContext(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "guidebook"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		ctx:         ctx,
		programName: programName,
		stdout:      stdout,
		stderr:      stderr,
		lookupEnv:   os.LookupEnv,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// resolveSettings merges settings file, environment and flags, in increasing priority.
func (runner *cliRunner) resolveSettings(opts settingsFlags) (guidebook.Settings, error) {
	var settings guidebook.Settings

	configPath := strings.TrimSpace(opts.ConfigPath)
	if configPath == "" {
		if _, err := os.Stat(defaultSettingsFile); err == nil {
			configPath = defaultSettingsFile
		}
	}

	if configPath != "" {
		loaded, err := guidebook.LoadSettingsFile(configPath)
		if err != nil {
			return guidebook.Settings{}, err
		}

		settings = loaded
	}

	lookup, err := runner.envLookup(opts.EnvFile)
	if err != nil {
		return guidebook.Settings{}, err
	}

	settings = settings.ApplyEnv(lookup)

	overrideString(&settings.Style, opts.Style)
	overrideString(&settings.Source, opts.Source)
	overrideString(&settings.Output, opts.Output)
	overrideString(&settings.Charset, opts.Charset)
	overrideString(&settings.Template, opts.Template)
	overrideString(&settings.Language, opts.Language)
	if strings.TrimSpace(opts.Type) != "" {
		settings.Type = guidebook.OutputFormat(opts.Type)
	}

	if len(opts.Ignore) > 0 {
		settings.Ignore = append(settings.Ignore, opts.Ignore...)
	}

	if opts.Workers != 0 {
		settings.Workers = opts.Workers
	}

	return settings, nil
}

// envLookup returns process environment lookup backed by dotenv file values.
// Process variables win over file values; a missing file is not an error.
func (runner *cliRunner) envLookup(envFile string) (func(string) (string, bool), error) {
	processLookup := runner.lookupEnv
	if processLookup == nil {
		processLookup = os.LookupEnv
	}

	envFile = strings.TrimSpace(envFile)
	if envFile == "" {
		return processLookup, nil
	}

	fileValues, err := godotenv.Read(envFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return processLookup, nil
		}

		return nil, fmt.Errorf("%w: read env file %q: %w", guidebook.ErrConfiguration, envFile, err)
	}

	return func(key string) (string, bool) {
		if value, ok := processLookup(key); ok {
			return value, true
		}

		value, ok := fileValues[key]
		return value, ok
	}, nil
}

// runGenerate builds the document and writes it to output path or stdout.
func (runner *cliRunner) runGenerate(settings guidebook.Settings, logger *slog.Logger, toStdout bool) error {
	generator := guidebook.Generator{Logger: logger}

	if !toStdout {
		if _, err := generator.Generate(runner.context(), settings); err != nil {
			return fmt.Errorf("generate guide book: %w", err)
		}

		return nil
	}

	// Output is not written in stdout mode but must still resolve.
	if strings.TrimSpace(settings.Output) == "" {
		settings.Output = "."
	}

	result, err := generator.Build(runner.context(), settings)
	if err != nil {
		return fmt.Errorf("generate guide book: %w", err)
	}

	if _, err := io.WriteString(runner.stdout, result.Document); err != nil {
		return fmt.Errorf("write document to stdout: %w", err)
	}

	return nil
}

// runList prints discovered categories and sessions as YAML.
func (runner *cliRunner) runList(settings guidebook.Settings, logger *slog.Logger) error {
	generator := guidebook.Generator{Logger: logger}
	categories, err := generator.Collect(runner.context(), settings)
	if err != nil {
		return fmt.Errorf("collect examples: %w", err)
	}

	view := make([]listCategory, 0, categories.Len())
	for _, category := range categories.Categories() {
		item := listCategory{
			Category: category.Name,
			Slug:     guidebook.Slug(category.Name),
			Sessions: make([]listSession, 0, len(category.Entries)),
		}

		for _, entry := range category.Entries {
			item.Sessions = append(item.Sessions, listSession{
				Name: entry.Session,
				Slug: guidebook.Slug(entry.Session),
			})
		}

		view = append(view, item)
	}

	encoder := yaml.NewEncoder(runner.stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(view); err != nil {
		return fmt.Errorf("encode category list: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode category list: %w", err)
	}

	return nil
}

// runTemplate writes selected built-in base template to stdout or file.
func (runner *cliRunner) runTemplate(templateName, outputPath string) error {
	tpl, err := guidebook.BuiltinTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	if strings.TrimSpace(outputPath) == "" {
		if _, err := io.WriteString(runner.stdout, tpl); err != nil {
			return fmt.Errorf("write template to stdout: %w", err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, []byte(tpl), 0o600); err != nil {
		return fmt.Errorf("write template file %q: %w", outputPath, err)
	}

	return nil
}

// newLogger builds slog logger on stderr from logging flags.
func (runner *cliRunner) newLogger(opts logFlags) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	handlerOptions := &slog.HandlerOptions{Level: level}
	if opts.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(runner.stderr, handlerOptions))
	}

	return slog.New(slog.NewTextHandler(runner.stderr, handlerOptions))
}

func (runner *cliRunner) context() context.Context {
	if runner.ctx == nil {
		return context.Background()
	}

	return runner.ctx
}

// overrideString replaces target with value when value is not blank.
func overrideString(target *string, value string) {
	if strings.TrimSpace(value) != "" {
		*target = value
	}
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Version.runner = runner
	options.Generate.runner = runner
	options.Watch.runner = runner
	options.List.runner = runner
	options.Template.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	return nil
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"generate": strings.TrimSpace(fmt.Sprintf(`
Extract /*GUIDE CATEGORY|SESSION blocks from source files and render them
into one document. Settings come from guidebook.yaml (or --config), then
GUIDEBOOK_* environment variables, then flags.

Examples:
> $ %s generate -s dist/style.css -i src -o docs
> $ %s generate -c guidebook.yaml -t markdown --stdout > GUIDE.md
`, programName, programName)),
		"watch": strings.TrimSpace(fmt.Sprintf(`
Generate the document, then regenerate it whenever source files, the style
sheet or the custom base template change. Stop with Ctrl+C.

Examples:
> $ %s watch -s dist/style.css -i src -o docs
`, programName)),
		"list": strings.TrimSpace(fmt.Sprintf(`
Print discovered categories and sessions with their anchors as YAML.
Only --source is required.

Examples:
> $ %s list -i src
`, programName)),
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in base template text. Use it as a starting point for --template.

Examples:
> $ %s template > base.html
> $ %s template -t markdown templates/base.md
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

func (runner *cliRunner) printVersionInfo() {
	_, _ = fmt.Fprintf(runner.stdout, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
