// Package uploads writes and removes uploaded image files under the public
// static root. Paths handed out (and accepted back) are relative to that
// root, e.g. "uploads/news_20260301123045123456.jpg", so templates can use
// them directly in image URLs.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
)

// subdir is the directory under the static root that holds uploads.
const subdir = "uploads"

// Dir is a file store rooted at the public static directory.
type Dir struct {
	staticRoot string
}

// NewDir creates a Dir rooted at staticRoot. The uploads subdirectory is
// created on first Save.
func NewDir(staticRoot string) *Dir {
	return &Dir{staticRoot: staticRoot}
}

// Save writes src to the uploads directory under name.
// PRE: name has been produced by upload.UniqueName (no path separators)
// POST: File exists on disk; returns its path relative to the static root
func (d *Dir) Save(name string, src io.Reader) (string, error) {
	dir := filepath.Join(d.staticRoot, subdir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("mkdir uploads: %w", err)
	}
	full := filepath.Join(dir, name)
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, src); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path.Join(subdir, name), nil
}

// Remove deletes the file at relPath (relative to the static root). A file
// that is already absent is not an error: the database row is the source of
// truth and the path may never have materialized.
// PRE: relPath came from a stored attachment or thumbnail column
// POST: File is gone; only fs.ErrNotExist is swallowed
func (d *Dir) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(d.staticRoot, filepath.FromSlash(relPath)))
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("upload_already_absent", "path", relPath)
		return nil
	}
	return err
}
