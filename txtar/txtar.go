// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package txtar implements a trivial text-based file archive format.
//
// It builds on [golang.org/x/tools/txtar] and adds helpers to read an
// archive from disk, look up a member and unpack it into a directory. The
// tools in this repository read their configuration from archives, and
// tests keep fixtures in them.
package txtar

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"
)

// An Archive is a collection of files.
type Archive = txtar.Archive

// A File is a single file in an archive.
type File = txtar.File

// Parse parses the serialized form of an Archive.
// The returned Archive holds slices of data.
func Parse(data []byte) *Archive {
	ar := txtar.Parse(data)
	if ar.Comment == nil {
		ar.Comment = []byte{}
	}
	if ar.Files == nil {
		ar.Files = []File{}
	}
	for i := range ar.Files {
		if ar.Files[i].Data == nil {
			ar.Files[i].Data = []byte{}
		}
	}
	return ar
}

// ParseFile parses the named file as an archive.
func ParseFile(file string) (*Archive, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(data), nil
}

// Lookup returns the contents of the named file in a, if present.
func Lookup(a *Archive, name string) ([]byte, bool) {
	for _, f := range a.Files {
		if f.Name == name {
			return f.Data, true
		}
	}
	return nil, false
}

// Extract writes the files of a into dir, creating directories as needed.
func Extract(a *Archive, dir string) error {
	for _, f := range a.Files {
		name := filepath.FromSlash(f.Name)
		if !filepath.IsLocal(name) {
			return fmt.Errorf("txtar: file %q escapes the target directory", f.Name)
		}
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
