// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package discover finds the source files whose headers should be rewritten.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are used when [Options.Extensions] is empty.
var DefaultExtensions = []string{"c", "h", "m"}

// Options control which files [Sources] returns.
type Options struct {
	// Extensions lists file extensions to include, with or without the
	// leading dot.
	Extensions []string
	// Ignore lists substrings; directories whose path relative to the root
	// contains any of them are skipped together with everything below them.
	Ignore []string
}

// Sources walks root and returns the paths of all matching files, sorted.
func Sources(root string, o Options) ([]string, error) {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	want := make(map[string]bool, len(exts))
	for _, ext := range exts {
		want[strings.TrimPrefix(ext, ".")] = true
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("discover: %s: %w", path, err)
		}
		if d.IsDir() {
			if path != root && ignored(relative(root, path), o.Ignore) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ext := extension(d.Name()); ext != "" && want[ext] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)
	return paths, nil
}

func ignored(path string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(path, p) {
			return true
		}
	}
	return false
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// extension returns the text after the last dot of name, or "" if there is
// none.
func extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i+1:]
}
