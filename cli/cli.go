// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package cli runs single-command tools: it parses flags, carries the
// process environment in a context and reports errors.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"go.astrophena.name/beautify/version"
)

// App is a runnable command-line tool.
type App interface {
	Run(context.Context) error
}

// HasFlags is an App that registers its own flags.
type HasFlags interface {
	App
	Flags(*flag.FlagSet)
}

// ErrInvalidArgs is wrapped by errors about bad command-line arguments.
var ErrInvalidArgs = errors.New("invalid arguments")

// ErrExitVersion is returned by Run after printing the version.
var ErrExitVersion = silent(errors.New("version flag exit"))

// silentError is an error that Main does not print, because the user has
// already seen what went wrong.
type silentError struct{ err error }

func silent(err error) error { return &silentError{err} }

func (e *silentError) Error() string { return e.err.Error() }
func (e *silentError) Unwrap() error { return e.err }

// Main runs app with the process environment, cancels it on interrupt and
// exits with status 1 if it fails. It is meant to be the whole body of main.
func Main(app App) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := Run(ctx, app)
	stop()
	if err == nil {
		return
	}
	var se *silentError
	if !errors.As(err, &se) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

// Run parses the flags of app from the environment carried by ctx and runs
// it with the remaining arguments. A -version flag is added unless app
// defines its own.
func Run(ctx context.Context, app App) error {
	env := GetEnv(ctx)

	flags := flag.NewFlagSet(version.CmdName(), flag.ContinueOnError)
	flags.SetOutput(env.Stderr)
	if fa, ok := app.(HasFlags); ok {
		fa.Flags(flags)
	}
	var showVersion bool
	if flags.Lookup("version") == nil {
		flags.BoolVar(&showVersion, "version", false, "Show version.")
	}
	flags.Usage = func() {
		if text := docText(docSrc); text != "" {
			fmt.Fprintf(env.Stderr, "%s\n\n", text)
		}
		fmt.Fprint(env.Stderr, "Available flags:\n\n")
		flags.PrintDefaults()
	}

	// The flag package has already printed parse errors.
	if err := flags.Parse(env.Args); err != nil {
		return silent(err)
	}
	if showVersion {
		fmt.Fprint(env.Stderr, version.Version())
		return ErrExitVersion
	}

	env.Args = flags.Args()
	return app.Run(WithEnv(ctx, env))
}

// Env is the environment a tool runs in. Tests construct one to run a tool
// without touching the real process state.
type Env struct {
	Args   []string
	Getenv func(string) string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// OSEnv returns the environment of the current process.
func OSEnv() *Env {
	return &Env{
		Args:   os.Args[1:],
		Getenv: os.Getenv,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// IsTerminal reports whether fd refers to a terminal. Tests may replace it.
var IsTerminal = term.IsTerminal

// StderrIsTerminal reports whether standard error is a terminal, and so
// whether log output may use colors.
func (e *Env) StderrIsTerminal() bool {
	f, ok := e.Stderr.(interface{ Fd() uintptr })
	return ok && IsTerminal(int(f.Fd()))
}

type envKey struct{}

// WithEnv returns a copy of ctx carrying e.
func WithEnv(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey{}, e)
}

// GetEnv returns the environment carried by ctx, or [OSEnv] if there is
// none.
func GetEnv(ctx context.Context) *Env {
	if e, ok := ctx.Value(envKey{}).(*Env); ok {
		return e
	}
	return OSEnv()
}

var docSrc []byte

// SetDocComment sets the source of the file holding the tool's
// documentation, which -help prints above the flags. The text is taken from
// the first block comment that starts with a line of its own:
//
//	//go:embed doc.go
//	var doc []byte
//
//	func init() { cli.SetDocComment(doc) }
func SetDocComment(src []byte) { docSrc = src }

func docText(src []byte) string {
	_, after, ok := strings.Cut("\n"+string(src), "\n/*\n")
	if !ok {
		return ""
	}
	text, _, _ := strings.Cut("\n"+after, "\n*/")
	return strings.Trim(text, "\n")
}
