// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.astrophena.name/beautify/cli"
	"go.astrophena.name/beautify/discover"
	"go.astrophena.name/beautify/header"
	"go.astrophena.name/beautify/logger"
	"go.astrophena.name/beautify/syncx"
	"go.astrophena.name/beautify/txtar"
)

const defaultConfig = ".beautify-header.txtar"

type config struct {
	extensions []string
	ignore     []string
	authors    []string
	company    string
}

func parseConfig(path string) (*config, error) {
	cfg := new(config)

	ar, err := txtar.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	for _, f := range ar.Files {
		var err error
		switch f.Name {
		case "extensions.json":
			err = json.Unmarshal(f.Data, &cfg.extensions)
		case "ignore.json":
			err = json.Unmarshal(f.Data, &cfg.ignore)
		case "authors.json":
			err = json.Unmarshal(f.Data, &cfg.authors)
		case "company.txt":
			cfg.company = strings.TrimSpace(string(f.Data))
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", path, f.Name, err)
		}
	}

	return cfg, nil
}

func main() { cli.Main(new(app)) }

type app struct {
	verbose bool
	dry     bool
	jobs    int
	config  string
	company string
	authors stringList
	exts    stringList
	ignore  stringList
}

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.verbose, "v", false, "Show debug messages.")
	fs.BoolVar(&a.dry, "dry", false, "Print the new headers without changing any files.")
	fs.IntVar(&a.jobs, "j", 1, "Process up to `n` files concurrently.")
	fs.StringVar(&a.config, "config", defaultConfig, "Read defaults from the txtar `file`, if it exists.")
	fs.StringVar(&a.company, "company", "", "Use `name` as the company of every file.")
	fs.Var(&a.authors, "author", "Use `name` as an author of every file. Can be repeated.")
	fs.Var(&a.exts, "ext", "Process files with `extension`. Can be repeated. Defaults to c, h and m.")
	fs.Var(&a.ignore, "ignore", "Skip directories whose path contains `pattern`. Can be repeated.")
}

// applyConfig fills options that were not set on the command line.
func (a *app) applyConfig(cfg *config) {
	if len(a.exts) == 0 {
		a.exts = cfg.extensions
	}
	if len(a.ignore) == 0 {
		a.ignore = cfg.ignore
	}
	if len(a.authors) == 0 {
		a.authors = cfg.authors
	}
	if a.company == "" {
		a.company = cfg.company
	}
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	ctx = logger.Put(ctx, logger.New(env.Stderr, logger.Options{
		Verbose: a.verbose,
		Color:   env.StderrIsTerminal(),
	}))

	if a.jobs < 1 {
		return fmt.Errorf("%w: -j must be at least 1, got %d", cli.ErrInvalidArgs, a.jobs)
	}

	cfg, err := parseConfig(a.config)
	if err != nil {
		return err
	}
	a.applyConfig(cfg)

	roots := env.Args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	var paths []string
	for _, root := range roots {
		if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
			return fmt.Errorf("%w: %q is not a directory", cli.ErrInvalidArgs, root)
		}
		found, err := discover.Sources(root, discover.Options{
			Extensions: a.exts,
			Ignore:     a.ignore,
		})
		if err != nil {
			return err
		}
		for _, path := range found {
			paths = append(paths, filepath.Clean(path))
		}
	}
	// Overlapping roots find the same file more than once, and every file
	// must be owned by a single Processor.
	slices.Sort(paths)
	paths = slices.Compact(paths)
	logger.Info(ctx, "found files", slog.Int("count", len(paths)))

	var (
		failures syncx.Map[string, error]
		stdout   = syncx.Protect(env.Stdout)
		lwg      = syncx.NewLimitedWaitGroup(a.jobs)
	)
	overrides := header.Overrides{Company: a.company, Authors: a.authors}
	for _, path := range paths {
		lwg.Go(func() {
			if err := a.process(ctx, &stdout, path, overrides); err != nil {
				logger.Error(ctx, "failed to process file", slog.String("path", path), logger.Err(err))
				failures.Store(path, err)
			}
		})
	}
	lwg.Wait()

	var errs []error
	for _, path := range paths {
		if err, failed := failures.Load(path); failed {
			errs = append(errs, err)
		}
	}
	logger.Info(ctx, "done", slog.Int("processed", len(paths)-len(errs)), slog.Int("failed", len(errs)))
	return errors.Join(errs...)
}

func (a *app) process(ctx context.Context, stdout *syncx.Protected[io.Writer], path string, o header.Overrides) error {
	p := header.New(path, o)

	if a.dry {
		if err := p.Scan(ctx); err != nil {
			return err
		}
		stdout.WriteAccess(func(w io.Writer) {
			fmt.Fprintf(w, "==> %s\n%s", path, p.Header())
		})
		return nil
	}

	if err := p.Rewrite(ctx); err != nil {
		return err
	}
	logger.Info(ctx, "rewrote header", slog.String("path", path))
	return nil
}
