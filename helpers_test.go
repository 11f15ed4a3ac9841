// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/guidebook

package guidebook

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// listingFS is an in-memory SourceFS whose ReadDir returns names in the
// configured order instead of sorting them.
type listingFS struct {
	dirs  map[string][]string
	files map[string]string
}

func newListingFS() *listingFS {
	return &listingFS{
		dirs:  make(map[string][]string),
		files: make(map[string]string),
	}
}

// dir registers directory path with children listed in the given order.
func (fsys *listingFS) dir(path string, children ...string) *listingFS {
	fsys.dirs[filepath.FromSlash(path)] = children
	return fsys
}

// file registers file content at path.
func (fsys *listingFS) file(path, content string) *listingFS {
	fsys.files[filepath.FromSlash(path)] = content
	return fsys
}

func (fsys *listingFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := fsys.dirs[path]; ok {
		return fakeInfo{name: filepath.Base(path), dir: true}, nil
	}

	if content, ok := fsys.files[path]; ok {
		return fakeInfo{name: filepath.Base(path), size: int64(len(content))}, nil
	}

	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

func (fsys *listingFS) ReadDir(path string) ([]fs.DirEntry, error) {
	children, ok := fsys.dirs[path]
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: fs.ErrNotExist}
	}

	entries := make([]fs.DirEntry, 0, len(children))
	for _, name := range children {
		_, isDir := fsys.dirs[filepath.Join(path, name)]
		entries = append(entries, fs.FileInfoToDirEntry(fakeInfo{name: name, dir: isDir}))
	}

	return entries, nil
}

func (fsys *listingFS) ReadFile(path string) ([]byte, error) {
	content, ok := fsys.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	return []byte(content), nil
}

func (fsys *listingFS) EvalSymlinks(path string) (string, error) {
	return path, nil
}

// fakeInfo is a minimal fs.FileInfo for listingFS entries.
type fakeInfo struct {
	name string
	size int64
	dir  bool
}

func (info fakeInfo) Name() string       { return info.name }
func (info fakeInfo) Size() int64        { return info.size }
func (info fakeInfo) ModTime() time.Time { return time.Time{} }
func (info fakeInfo) IsDir() bool        { return info.dir }
func (info fakeInfo) Sys() any           { return nil }

func (info fakeInfo) Mode() fs.FileMode {
	if info.dir {
		return fs.ModeDir | 0o755
	}

	return 0o644
}

// block returns one example block with LF line endings.
func block(category, session string, lines ...string) string {
	return StartMarker + " " + category + "|" + session + "\n" + strings.Join(lines, "\n") + "\n" + EndMarker + "\n"
}

// writeFile writes content under dir, creating parents, and returns the full path.
func writeFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// sessions returns "category/session" pairs in example order.
func sessions(examples []Example) []string {
	out := make([]string, 0, len(examples))
	for _, example := range examples {
		out = append(out, example.Category+"/"+example.Session)
	}

	return out
}
