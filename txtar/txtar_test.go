// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package txtar_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/beautify/testutil"
	"go.astrophena.name/beautify/txtar"
)

const config = `Defaults for the Polynom project.
-- extensions.json --
["h", "m"]
-- ignore.json --
["Pods"]
-- company.txt --
TU Wien
-- empty.txt --
`

func TestParse(t *testing.T) {
	cases := map[string]struct {
		in   string
		want *txtar.Archive
	}{
		"empty": {
			want: &txtar.Archive{Comment: []byte{}, Files: []txtar.File{}},
		},
		"comment only": {
			in:   "Nothing configured.\n",
			want: &txtar.Archive{Comment: []byte("Nothing configured.\n"), Files: []txtar.File{}},
		},
		"configuration": {
			in: config,
			want: &txtar.Archive{
				Comment: []byte("Defaults for the Polynom project.\n"),
				Files: []txtar.File{
					{Name: "extensions.json", Data: []byte("[\"h\", \"m\"]\n")},
					{Name: "ignore.json", Data: []byte("[\"Pods\"]\n")},
					{Name: "company.txt", Data: []byte("TU Wien\n")},
					{Name: "empty.txt", Data: []byte{}},
				},
			},
		},
		"missing final newline": {
			in: "-- company.txt --\nTU Wien",
			want: &txtar.Archive{
				Comment: []byte{},
				Files:   []txtar.File{{Name: "company.txt", Data: []byte("TU Wien\n")}},
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, txtar.Parse([]byte(tc.in)), tc.want)
		})
	}
}

func TestParseFile(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), ".beautify-header.txtar", config)
	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, len(ar.Files), 4)

	_, err = txtar.ParseFile(filepath.Join(t.TempDir(), "missing.txtar"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want fs.ErrNotExist, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	ar := txtar.Parse([]byte(config))

	cases := map[string]struct {
		name   string
		want   string
		wantOK bool
	}{
		"present":       {name: "company.txt", want: "TU Wien\n", wantOK: true},
		"present empty": {name: "empty.txt", want: "", wantOK: true},
		"absent":        {name: "authors.json"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			data, ok := txtar.Lookup(ar, tc.name)
			testutil.AssertEqual(t, ok, tc.wantOK)
			testutil.AssertEqual(t, string(data), tc.want)
		})
	}
}

func TestExtract(t *testing.T) {
	t.Run("nested files", func(t *testing.T) {
		dir := t.TempDir()
		ar := txtar.Parse([]byte("-- main.m --\nint main(void);\n-- 3rdParty/TestFlight.h --\n@interface TestFlight\n"))
		if err := txtar.Extract(ar, dir); err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, testutil.ReadFile(t, filepath.Join(dir, "main.m")), "int main(void);\n")
		testutil.AssertEqual(t, testutil.ReadFile(t, filepath.Join(dir, "3rdParty", "TestFlight.h")), "@interface TestFlight\n")
	})

	for _, name := range []string{"../escape.h", "/abs.h"} {
		t.Run("rejects "+name, func(t *testing.T) {
			parent := t.TempDir()
			dir := filepath.Join(parent, "project")
			ar := txtar.Parse([]byte("-- " + name + " --\nint x;\n"))
			err := txtar.Extract(ar, dir)
			if err == nil || !strings.Contains(err.Error(), "escapes") {
				t.Fatalf("want escape error, got %v", err)
			}
			if _, err := os.Stat(filepath.Join(parent, "escape.h")); !errors.Is(err, fs.ErrNotExist) {
				t.Fatalf("file written outside the target directory: %v", err)
			}
		})
	}
}
