// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.astrophena.name/beautify/logger"
)

// Overrides holds caller-supplied values that take precedence over what is
// extracted from a file.
type Overrides struct {
	// Company replaces the extracted company when not empty.
	Company string
	// Authors replaces the extracted authors when not empty.
	Authors []string
}

// Info is a snapshot of the fields known about a file.
type Info struct {
	Filename string
	Authors  []string // sorted
	Date     string
	Company  string
	Year     string
}

// Processor rewrites the header of a single file.
//
// A Processor is not safe for concurrent use. Separate Processors for
// separate files can run concurrently.
type Processor struct {
	path     string
	filename string

	authors map[string]struct{}
	date    string
	company string
	year    string

	overwriteAuthors bool
	overwriteCompany bool
}

// now is replaced in tests.
var now = time.Now

// New returns a Processor for the file at path. Blank override values are
// ignored.
func New(path string, o Overrides) *Processor {
	p := &Processor{
		path:     path,
		filename: filepath.Base(path),
		authors:  make(map[string]struct{}, len(o.Authors)),
		company:  strings.TrimSpace(o.Company),
	}
	for _, a := range o.Authors {
		if a = strings.TrimSpace(a); a != "" {
			p.authors[a] = struct{}{}
		}
	}
	p.overwriteAuthors = len(p.authors) > 0
	p.overwriteCompany = p.company != ""
	return p
}

// Path returns the path of the file p was created for.
func (p *Processor) Path() string { return p.path }

// Info returns the fields collected so far.
func (p *Processor) Info() Info {
	return Info{
		Filename: p.filename,
		Authors:  p.sortedAuthors(),
		Date:     p.date,
		Company:  p.company,
		Year:     p.year,
	}
}

func (p *Processor) sortedAuthors() []string {
	authors := make([]string, 0, len(p.authors))
	for a := range p.authors {
		authors = append(authors, a)
	}
	slices.Sort(authors)
	return authors
}

// Scan reads the header block of the file and extracts its fields.
func (p *Processor) Scan(ctx context.Context) error {
	f, err := os.Open(p.path)
	if err != nil {
		return p.errorf("scan", err)
	}
	defer f.Close()

	block, canonical, _, err := readHeader(bufio.NewReader(f))
	if err != nil {
		return p.errorf("scan", err)
	}
	for _, line := range block {
		p.processLine(line, canonical)
	}

	logger.Debug(ctx, "scanned header",
		slog.String("path", p.path),
		slog.Int("lines", len(block)),
		slog.Bool("canonical", canonical),
		slog.Any("authors", p.sortedAuthors()),
		slog.String("date", p.date),
		slog.String("company", p.company),
		slog.String("year", p.year),
	)
	return nil
}

// readHeader reads the header block at the start of r and reports whether
// it is a canonical header. Lines read past the block are returned in body
// and the rest of the file is left in r.
//
// A canonical header is recognized only as a whole: the opening line, the
// file tag and block lines up to the closing one. Anything else starting
// with "/**" is a doc comment and belongs to the body.
func readHeader(r *bufio.Reader) (block []string, canonical bool, body []string, err error) {
	var read []string
	next := func() bool {
		line, rerr := r.ReadString('\n')
		if line != "" {
			read = append(read, line)
		}
		if rerr != nil && rerr != io.EOF {
			err = rerr
		}
		return line != "" && err == nil
	}

	if next() && canonicalOpen.MatchString(read[0]) && next() && canonicalFile.MatchString(read[1]) {
		for next() {
			line := read[len(read)-1]
			if canonicalClose.MatchString(line) {
				return read, true, nil, nil
			}
			if !canonicalLine.MatchString(line) {
				break
			}
		}
	}

	n := 0
	for ; n < len(read) || next(); n++ {
		if !IsHeaderLine(read[n]) {
			break
		}
	}
	if err != nil {
		return nil, false, nil, err
	}
	return read[:n], false, read[n:], nil
}

// Header returns the canonical header for the collected fields.
func (p *Processor) Header() string {
	var sb strings.Builder
	sb.WriteString("/**\n")
	fmt.Fprintf(&sb, " *   @file       %s\n", p.filename)
	for _, a := range p.sortedAuthors() {
		fmt.Fprintf(&sb, " *   @author     %s\n", a)
	}
	if p.date != "" {
		fmt.Fprintf(&sb, " *   @date       %s\n", p.date)
	}
	if p.company != "" {
		fmt.Fprintf(&sb, " *   @copyright       %s\n", p.company)
	}
	sb.WriteString(" *\n")
	if p.company != "" {
		year := p.year
		if year == "" {
			year = strconv.Itoa(now().Year())
		}
		fmt.Fprintf(&sb, " *   Copyright (c) %s %s. All rights reserved.\n", year, p.company)
	}
	sb.WriteString(" */\n")
	return sb.String()
}

// writeTo writes the canonical header followed by the body of the file.
// The header block is located again by reading the file from the start.
func (p *Processor) writeTo(w io.Writer) error {
	f, err := os.Open(p.path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	_, _, body, err := readHeader(r)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(p.Header()); err != nil {
		return err
	}
	for _, line := range body {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	if _, err := io.Copy(bw, r); err != nil {
		return err
	}
	return bw.Flush()
}

func (p *Processor) errorf(op string, err error) error {
	return fmt.Errorf("header: %s %s: %w", op, p.path, err)
}
