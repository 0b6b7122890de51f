// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"go.astrophena.name/beautify/logger"
)

// Rewrite scans the file and replaces it with a copy that starts with the
// canonical header.
//
// The new content is written to a temporary directory created next to the
// file and then moved over the original in a single rename, so a failure at
// any earlier point leaves the file untouched. The temporary directory is
// removed in all cases. If ctx is done before the rename, Rewrite returns
// its error.
func (p *Processor) Rewrite(ctx context.Context) (err error) {
	if err := p.Scan(ctx); err != nil {
		return err
	}

	fi, err := os.Stat(p.path)
	if err != nil {
		return p.errorf("stat", err)
	}

	// Same directory as the file, so the final rename never crosses
	// filesystems.
	dir, err := os.MkdirTemp(filepath.Dir(p.path), ".beautify-header-")
	if err != nil {
		return p.errorf("create temporary directory for", err)
	}
	defer func() {
		if rerr := os.RemoveAll(dir); rerr != nil && err == nil {
			err = p.errorf("remove temporary directory for", rerr)
		}
	}()

	tmp := filepath.Join(dir, p.filename)
	if err := p.writeTemp(tmp, fi.Mode().Perm()); err != nil {
		return p.errorf("write", err)
	}

	if err := ctx.Err(); err != nil {
		return p.errorf("rewrite", err)
	}
	if err := atomic.ReplaceFile(tmp, p.path); err != nil {
		return p.errorf("replace", err)
	}

	logger.Debug(ctx, "rewrote header", slog.String("path", p.path), slog.String("temp", tmp))
	return nil
}

func (p *Processor) writeTemp(name string, perm os.FileMode) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if err := p.writeTo(f); err != nil {
		f.Close()
		return err
	}
	// OpenFile is subject to the umask.
	if err := f.Chmod(perm); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
