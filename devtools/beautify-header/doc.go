// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Beautify-header rewrites the leading comment block of source files into one
canonical header.

It recursively walks the given directories (the current directory by
default), picks files by extension and replaces each file's header block,
which is the leading run of // comment lines or a header this tool wrote
before, with:

	/**
	 *   @file       <file name>
	 *   @author     <author>
	 *   @date       <creation date>
	 *   @copyright       <company>
	 *
	 *   Copyright (c) <year> <company>. All rights reserved.

followed by the closing line of the comment. Lines for unknown fields are
left out.

Authors, the creation date, the company and the copyright year are taken
from "Created by <author> on <date>", "@author <author>" and
"Copyright (c) <year> <company>." lines of the old header. The -author and
-company flags replace the extracted authors and company for every file. The
rest of each file, including a leading /** doc comment, is kept byte for
byte. A file found through several overlapping directories is processed
once. Each file is written to a
temporary directory first and then moved over the original.

Defaults can be stored in a .beautify-header.txtar file in the working
directory (or the file named by -config). It is a txtar archive that can
contain the following files:

  - extensions.json: a JSON array of file extensions to process.
  - ignore.json: a JSON array of substrings; directories whose path
    contains one of them are skipped.
  - authors.json: a JSON array of authors used for every file.
  - company.txt: the company used for every file.

Command-line flags take precedence over the configuration file.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/beautify/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
