// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest provides a table-driven harness for testing [cli.App]
// implementations.
package clitest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"go.astrophena.name/beautify/cli"
)

// Case describes a single invocation of an application.
type Case[A cli.App] struct {
	// Args are passed to the application as command-line arguments.
	Args []string
	// Stdin is the application's standard input. Empty if nil.
	Stdin io.Reader
	// Env holds environment variables visible through Env.Getenv.
	Env map[string]string

	// WantErr, if set, must match the returned error with errors.Is.
	WantErr error
	// WantErrType, if set, must match the returned error with errors.As.
	WantErrType error
	// WantNothingPrinted requires both stdout and stderr to be empty.
	WantNothingPrinted bool
	// WantInStdout must be a substring of stdout.
	WantInStdout string
	// WantInStderr must be a substring of stderr.
	WantInStderr string

	// CheckFunc, if set, is called with the application after it ran.
	CheckFunc func(*testing.T, A)
}

// Run runs every case against a fresh application returned by setup.
func Run[A cli.App](t *testing.T, setup func(*testing.T) A, cases map[string]Case[A]) {
	t.Helper()

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := setup(t)

			var stdout, stderr bytes.Buffer
			stdin := tc.Stdin
			if stdin == nil {
				stdin = strings.NewReader("")
			}
			env := &cli.Env{
				Args:   tc.Args,
				Getenv: func(key string) string { return tc.Env[key] },
				Stdin:  stdin,
				Stdout: &stdout,
				Stderr: &stderr,
			}

			err := cli.Run(cli.WithEnv(context.Background(), env), app)

			switch {
			case tc.WantErr != nil:
				if !errors.Is(err, tc.WantErr) {
					t.Fatalf("want error %v, got %v", tc.WantErr, err)
				}
			case tc.WantErrType != nil:
				target := reflect.New(reflect.TypeOf(tc.WantErrType))
				if !errors.As(err, target.Interface()) {
					t.Fatalf("want error of type %T, got %v (%T)", tc.WantErrType, err, err)
				}
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}

			if tc.WantNothingPrinted && (stdout.Len() > 0 || stderr.Len() > 0) {
				t.Errorf("want nothing printed, got stdout %q and stderr %q", stdout.String(), stderr.String())
			}
			if tc.WantInStdout != "" && !strings.Contains(stdout.String(), tc.WantInStdout) {
				t.Errorf("stdout must contain %q, got %q", tc.WantInStdout, stdout.String())
			}
			if tc.WantInStderr != "" && !strings.Contains(stderr.String(), tc.WantInStderr) {
				t.Errorf("stderr must contain %q, got %q", tc.WantInStderr, stderr.String())
			}

			if tc.CheckFunc != nil {
				tc.CheckFunc(t, app)
			}
		})
	}
}
