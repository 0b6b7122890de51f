// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"regexp"
	"strings"
)

// commentLine matches the lines of a legacy header: optional leading word
// characters followed by "//".
var commentLine = regexp.MustCompile(`^\w*//`)

// IsHeaderLine reports whether line is shaped like a legacy header line.
// Blank lines, preprocessor directives and block comments are not.
func IsHeaderLine(line string) bool { return commentLine.MatchString(line) }

// The layout of a header written by Header. Only a block that opens with
// canonicalOpen, continues with canonicalFile and ends with canonicalClose
// counts as one.
var (
	canonicalOpen  = regexp.MustCompile(`^/\*\*\r?\n?$`)
	canonicalFile  = regexp.MustCompile(`^ \*   @file `)
	canonicalLine  = regexp.MustCompile(`^ \*(?:[ \t]|\r?\n?$)`)
	canonicalClose = regexp.MustCompile(`^ \*/\s*$`)
)

// A rule extracts fields from a single header line. Every rule is tried on
// every line, so one line may feed several fields.
type rule struct {
	name      string
	re        *regexp.Regexp
	canonical bool // only inside a canonical header
	merge     func(p *Processor, m []string)
}

var rules = []rule{
	{
		name: "created",
		re:   regexp.MustCompile(`Created by (.+) on (\d{2}[./]\d{2}[./]\d{2})`),
		merge: func(p *Processor, m []string) {
			p.addAuthor(m[1])
			p.date = m[2]
		},
	},
	{
		name: "author",
		re:   regexp.MustCompile(`@author\s+(\S.*)`),
		merge: func(p *Processor, m []string) {
			p.addAuthor(m[1])
		},
	},
	{
		name:  "copyright",
		re:    regexp.MustCompile(`Copyright\s+(?:\([cC]\)\s+)?(\d{4})\s+(\pL[\pL ]*)\.`),
		merge: (*Processor).setCopyright,
	},
	{
		// Companies written by Header may contain any character, so the
		// canonical line is read back up to its fixed suffix. It comes after
		// the general rule and wins over its shorter match.
		name:      "canonical copyright",
		re:        regexp.MustCompile(`^ \*   Copyright \(c\) (\d{4}) (.+)\. All rights reserved\.$`),
		canonical: true,
		merge:     (*Processor).setCopyright,
	},
	{
		name:      "date tag",
		re:        regexp.MustCompile(`^ \*   @date\s+(\S.*)`),
		canonical: true,
		merge: func(p *Processor, m []string) {
			p.date = m[1]
		},
	},
}

// ProcessLine extracts author, date, company and year from one line of a
// legacy header.
func (p *Processor) ProcessLine(line string) { p.processLine(line, false) }

func (p *Processor) processLine(line string, canonical bool) {
	line = strings.TrimRight(line, "\r\n")
	for _, r := range rules {
		if r.canonical && !canonical {
			continue
		}
		if m := r.re.FindStringSubmatch(line); m != nil {
			for i := range m {
				m[i] = strings.TrimSpace(m[i])
			}
			r.merge(p, m)
		}
	}
}

func (p *Processor) addAuthor(name string) {
	if p.overwriteAuthors || name == "" {
		return
	}
	p.authors[name] = struct{}{}
}

func (p *Processor) setCopyright(m []string) {
	p.year = m[1]
	if !p.overwriteCompany {
		p.company = m[2]
	}
}
