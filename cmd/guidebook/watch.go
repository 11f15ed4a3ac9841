// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/woozymasta/guidebook"
)

// defaultDebounce delays regeneration until file events settle.
const defaultDebounce = 300 * time.Millisecond

// watchCommand regenerates the document on file changes.
type watchCommand struct {
	runner *cliRunner

	Settings settingsFlags `group:"Settings"`
	Log      logFlags      `group:"Logging"`
	Debounce time.Duration `long:"debounce" description:"Delay before regenerating after a change" default:"300ms"`
}

// Execute runs watch subcommand.
func (command *watchCommand) Execute(_ []string) error {
	settings, err := command.runner.resolveSettings(command.Settings)
	if err != nil {
		return err
	}

	return runWatch(command.runner.context(), settings, command.runner.newLogger(command.Log), command.Debounce)
}

// runWatch generates once, then regenerates on relevant file events until ctx is done.
// Failed regenerations are logged and do not stop watching.
func runWatch(ctx context.Context, settings guidebook.Settings, logger *slog.Logger, debounce time.Duration) error {
	settings, err := settings.Normalize()
	if err != nil {
		return err
	}

	outputPath, err := guidebook.ResolveOutputPath(settings.Output, settings.Type)
	if err != nil {
		return err
	}

	watcher, err := newSettingsWatcher(settings, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = watcher.Close()
	}()

	generator := guidebook.Generator{Logger: logger}
	regenerate := func() {
		if _, err := generator.Generate(ctx, settings); err != nil {
			logger.Error("generation failed", guidebook.ErrorAttr(err))
		}
	}

	regenerate()

	if debounce <= 0 {
		debounce = defaultDebounce
	}

	rebuild, trigger, stop := newDebouncer(debounce)
	defer stop()

	logger.Info("watching for changes", slog.String(guidebook.KeyPath, settings.Source))
	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if shouldIgnoreEvent(event.Name, outputPath, settings.Ignore) {
				continue
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					addDirsRecursive(watcher, event.Name, settings.Ignore, logger)
				}
			}

			logger.Debug("file change detected", slog.String(guidebook.KeyPath, event.Name), slog.String("op", event.Op.String()))
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Warn("watcher error", guidebook.ErrorAttr(err))
		case <-rebuild:
			regenerate()
		}
	}
}

// newSettingsWatcher watches the source tree plus style and template parent directories.
func newSettingsWatcher(settings guidebook.Settings, logger *slog.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	sourcePath, err := filepath.Abs(settings.Source)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("%w %q: %w", guidebook.ErrSourceNotFound, settings.Source, err)
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("%w: %q", guidebook.ErrSourceNotFound, sourcePath)
	}

	if info.IsDir() {
		addDirsRecursive(watcher, sourcePath, settings.Ignore, logger)
	} else {
		addWatch(watcher, filepath.Dir(sourcePath), logger)
	}

	for _, path := range []string{settings.Style, settings.Template} {
		if strings.TrimSpace(path) == "" {
			continue
		}

		if absPath, err := filepath.Abs(path); err == nil {
			addWatch(watcher, filepath.Dir(absPath), logger)
		}
	}

	return watcher, nil
}

// newDebouncer returns rebuild channel, trigger function and stop function.
// Triggers within delay of each other collapse into one rebuild request.
func newDebouncer(delay time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}

	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}

	return rebuildReq, trigger, stop
}

// addDirsRecursive adds root and every directory below it to watcher.
func addDirsRecursive(watcher *fsnotify.Watcher, root string, ignore []string, logger *slog.Logger) {
	for _, dir := range watchDirs(root, ignore) {
		addWatch(watcher, dir, logger)
	}
}

// watchDirs lists root and its subdirectories the way the source walker sees them:
// symbolic links to directories are followed, ignored names are skipped and
// every real directory is returned once.
func watchDirs(root string, ignore []string) []string {
	var dirs []string
	visited := make(map[string]struct{})

	var visit func(dir string)
	visit = func(dir string) {
		realPath, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return
		}

		if _, seen := visited[realPath]; seen {
			return
		}

		visited[realPath] = struct{}{}
		dirs = append(dirs, dir)

		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}

		for _, entry := range entries {
			if matchesIgnore(entry.Name(), ignore) {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				visit(path)
				continue
			}

			if entry.Type()&os.ModeSymlink != 0 {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					visit(path)
				}
			}
		}
	}

	visit(root)
	return dirs
}

// addWatch registers one directory and logs failures.
func addWatch(watcher *fsnotify.Watcher, dir string, logger *slog.Logger) {
	if err := watcher.Add(dir); err != nil {
		logger.Warn("watch add failed", slog.String(guidebook.KeyPath, dir), guidebook.ErrorAttr(err))
	}
}

// shouldIgnoreEvent returns true for events that must not trigger regeneration:
// the output document, names matching ignore patterns and editor scratch files.
func shouldIgnoreEvent(path, outputPath string, ignore []string) bool {
	if outputPath != "" && filepath.Clean(path) == filepath.Clean(outputPath) {
		return true
	}

	base := filepath.Base(path)
	if matchesIgnore(base, ignore) {
		return true
	}

	return isEditorScratch(base)
}

// isEditorScratch reports backup, swap and lock files written by editors and file managers.
func isEditorScratch(base string) bool {
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".swo") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db" || base == ".DS_Store"
}

// matchesIgnore reports whether base name matches one of the ignore patterns.
func matchesIgnore(base string, ignore []string) bool {
	for _, pattern := range ignore {
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
	}

	return false
}
