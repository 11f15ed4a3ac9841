// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
)

// SourceFS is the file system view used by Walker.
type SourceFS interface {
	// Stat returns file info, following symbolic links.
	Stat(path string) (fs.FileInfo, error)
	// ReadDir lists directory entries; Walker keeps the returned order.
	ReadDir(path string) ([]fs.DirEntry, error)
	ReadFile(path string) ([]byte, error)
	// EvalSymlinks returns path with all symbolic links resolved.
	EvalSymlinks(path string) (string, error)
}

// OSFS implements SourceFS on top of the host file system.
type OSFS struct{}

// Stat implements SourceFS.
func (OSFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// ReadDir implements SourceFS.
func (OSFS) ReadDir(path string) ([]fs.DirEntry, error) { return os.ReadDir(path) }

// ReadFile implements SourceFS.
func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// EvalSymlinks implements SourceFS.
func (OSFS) EvalSymlinks(path string) (string, error) { return filepath.EvalSymlinks(path) }

// Walker discovers source files and extracts their example blocks.
type Walker struct {
	// FS defaults to OSFS.
	FS SourceFS
	// Charset decodes every file; nil reads bytes as UTF-8.
	Charset encoding.Encoding
	// Ignore holds base-name glob patterns skipped during discovery.
	Ignore []string
	// Workers bounds parallel file reads; zero uses GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// Walk collects examples from root, which may be a file or a directory.
//
// Directories are traversed depth-first in listing order. Files may be read
// in parallel, but the result always follows discovery order.
func (walker *Walker) Walk(ctx context.Context, root string) ([]Example, error) {
	files, err := walker.Discover(ctx, root)
	if err != nil {
		return nil, err
	}

	walker.logger().Debug("source files discovered", slog.String(KeyPath, root), slog.Int(KeyFiles, len(files)))
	return walker.extractFiles(ctx, files)
}

// Discover returns every source file under root in traversal order.
func (walker *Walker) Discover(ctx context.Context, root string) ([]string, error) {
	if err := ValidateIgnorePatterns(walker.Ignore); err != nil {
		return nil, err
	}

	rootPath, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrSourceNotFound, root, err)
	}

	info, err := walker.sourceFS().Stat(rootPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, rootPath)
		}

		return nil, fmt.Errorf("%w %q: %w", ErrReadSource, rootPath, err)
	}

	if !info.IsDir() {
		return []string{rootPath}, nil
	}

	var files []string
	if err := walker.discoverDir(ctx, rootPath, make(map[string]struct{}), &files); err != nil {
		return nil, err
	}

	return files, nil
}

// discoverDir appends files of dir to out, recursing into subdirectories in listing order.
func (walker *Walker) discoverDir(ctx context.Context, dir string, ancestors map[string]struct{}, out *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	realPath, err := walker.sourceFS().EvalSymlinks(dir)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrReadSource, dir, err)
	}

	if _, active := ancestors[realPath]; active {
		return fmt.Errorf("%w: %q resolves to %q", ErrTraversalCycle, dir, realPath)
	}

	ancestors[realPath] = struct{}{}
	defer delete(ancestors, realPath)

	entries, err := walker.sourceFS().ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrReadSource, dir, err)
	}

	for _, entry := range entries {
		if walker.ignored(entry.Name()) {
			walker.logger().Debug("skip ignored entry", slog.String(KeyPath, filepath.Join(dir, entry.Name())))
			continue
		}

		path := filepath.Join(dir, entry.Name())
		isDir, err := walker.isDir(path, entry)
		if err != nil {
			return err
		}

		if isDir {
			if err := walker.discoverDir(ctx, path, ancestors, out); err != nil {
				return err
			}

			continue
		}

		*out = append(*out, path)
	}

	return nil
}

// isDir reports whether entry is a directory, following symbolic links.
func (walker *Walker) isDir(path string, entry fs.DirEntry) (bool, error) {
	if entry.IsDir() {
		return true, nil
	}

	if entry.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}

	info, err := walker.sourceFS().Stat(path)
	if err != nil {
		return false, fmt.Errorf("%w %q: %w", ErrReadSource, path, err)
	}

	return info.IsDir(), nil
}

// extractFiles reads and parses files with bounded parallelism and concatenates results in input order.
func (walker *Walker) extractFiles(ctx context.Context, files []string) ([]Example, error) {
	results := make([][]Example, len(files))
	failures := make([]error, len(files))

	// Sibling failures do not cancel pending reads, so the reported error is
	// always the one of the earliest failing file.
	var group errgroup.Group
	group.SetLimit(walker.workers())
	for index, path := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures[index] = err
				return err
			}

			examples, err := walker.ExtractFile(path)
			if err != nil {
				failures[index] = err
				return err
			}

			results[index] = examples
			return nil
		})
	}

	waitErr := group.Wait()
	for _, err := range failures {
		if err != nil {
			return nil, err
		}
	}

	if waitErr != nil {
		return nil, waitErr
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, examples := range results {
		total += len(examples)
	}

	out := make([]Example, 0, total)
	for _, examples := range results {
		out = append(out, examples...)
	}

	return out, nil
}

// ExtractFile reads one file with the walker charset and extracts its examples.
func (walker *Walker) ExtractFile(path string) ([]Example, error) {
	data, err := walker.sourceFS().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadSource, path, err)
	}

	text, err := decodeText(walker.Charset, data)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", path, err)
	}

	examples, err := Extract(text)
	if err != nil {
		return nil, fmt.Errorf("extract examples from %q: %w", path, err)
	}

	if len(examples) > 0 {
		walker.logger().Debug("extracted examples", slog.String(KeyPath, path), slog.Int(KeyExamples, len(examples)))
	}

	return examples, nil
}

// ValidateIgnorePatterns reports the first malformed base-name glob as a configuration error.
func ValidateIgnorePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: ignore pattern %q: %w", ErrConfiguration, pattern, err)
		}
	}

	return nil
}

// ignored reports whether base name matches one of the ignore patterns.
// Patterns are validated before discovery starts.
func (walker *Walker) ignored(name string) bool {
	for _, pattern := range walker.Ignore {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
	}

	return false
}

func (walker *Walker) sourceFS() SourceFS {
	if walker.FS == nil {
		return OSFS{}
	}

	return walker.FS
}

func (walker *Walker) workers() int {
	if walker.Workers > 0 {
		return walker.Workers
	}

	return runtime.GOMAXPROCS(0)
}

func (walker *Walker) logger() *slog.Logger {
	if walker.Logger == nil {
		return discardLogger
	}

	return walker.Logger
}
