// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package testutil provides helpers shared by the tests of this module.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.astrophena.name/beautify/txtar"
)

// AssertEqual fails the test if got is not deeply equal to want.
func AssertEqual(t *testing.T, got, want any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("values are not equal:\ngot:  %#v\nwant: %#v", got, want)
	}
}

// RunGolden runs f as a subtest for every file matching glob, named after
// the file without its extension, and compares the result with the file of
// the same name ending in ".golden". With update set, the golden files are
// rewritten instead. A glob without matches fails the test.
func RunGolden(t *testing.T, glob string, f func(t *testing.T, match string) []byte, update bool) {
	t.Helper()
	matches, err := filepath.Glob(glob)
	if err != nil {
		t.Fatalf("filepath.Glob(%q): %v", glob, err)
	}
	if len(matches) == 0 {
		t.Fatalf("no files match %q", glob)
	}

	for _, match := range matches {
		base := strings.TrimSuffix(match, filepath.Ext(match))
		t.Run(filepath.Base(base), func(t *testing.T) {
			got := f(t, match)
			golden := base + ".golden"
			if update {
				if err := os.WriteFile(golden, got, 0o644); err != nil {
					t.Fatal(err)
				}
				return
			}
			want, err := os.ReadFile(golden)
			if err != nil {
				t.Fatal(err)
			}
			if line, ok := firstDiff(string(got), string(want)); ok {
				t.Fatalf("%s: mismatch at line %d\ngot:\n%s\nwant:\n%s", golden, line, got, want)
			}
		})
	}
}

// firstDiff returns the 1-based number of the first line where a and b
// differ.
func firstDiff(a, b string) (line int, differ bool) {
	al := strings.SplitAfter(a, "\n")
	bl := strings.SplitAfter(b, "\n")
	for i := range max(len(al), len(bl)) {
		if i >= len(al) || i >= len(bl) || al[i] != bl[i] {
			return i + 1, true
		}
	}
	return 0, false
}

// UnmarshalJSON parses b into a value of type V, failing the test on error.
func UnmarshalJSON[V any](t *testing.T, b []byte) V {
	t.Helper()
	var v V
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}
	return v
}

// WriteFile writes content to name inside dir, creating parent directories,
// and returns the full path. Name is slash-separated.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ReadFile returns the contents of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

// ExtractTxtar unpacks ar into dir.
func ExtractTxtar(t *testing.T, ar *txtar.Archive, dir string) {
	t.Helper()
	if err := txtar.Extract(ar, dir); err != nil {
		t.Fatalf("failed to extract txtar to dir %q: %v", dir, err)
	}
}
