// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version reports build information embedded in the binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

// Info describes the running binary.
type Info struct {
	Name      string // command name
	Commit    string // VCS revision, if known
	Modified  bool   // whether the working tree had uncommitted changes
	GoVersion string
	OS        string
	Arch      string
}

// String returns a human-readable, multi-line description of i.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s ", i.Name)
	switch {
	case i.Commit == "":
		sb.WriteString("devel")
	case i.Modified:
		fmt.Fprintf(&sb, "%s (dirty)", short(i.Commit))
	default:
		sb.WriteString(short(i.Commit))
	}
	fmt.Fprintf(&sb, "\nbuilt with %s for %s/%s\n", i.GoVersion, i.OS, i.Arch)
	return sb.String()
}

func short(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

var info = sync.OnceValue(func() Info {
	i := Info{
		Name:      CmdName(),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			i.Commit = s.Value
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
	return i
})

// Version returns the build information of the running binary.
func Version() Info { return info() }

// CmdName returns the base name of the running executable without extension.
func CmdName() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	name := filepath.Base(exe)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
