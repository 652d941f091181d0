package orchestrators

import (
	"errors"
	"io"
	"time"

	"mikrobot/internal/domain/upload"
)

// ErrNotFound is returned when a referenced record or image does not exist.
var ErrNotFound = errors.New("record not found")

// FileStore is the filesystem side of the image attachment manager.
// *uploads.Dir satisfies this interface.
type FileStore interface {
	// Save writes the content under name and returns the stored path
	// relative to the static root.
	Save(name string, src io.Reader) (string, error)
	// Remove deletes a stored file, tolerating one that is already absent.
	Remove(relPath string) error
}

// storeBatch writes a pre-validated batch of uploads under the given name
// prefix and returns the stored paths in upload order.
//
// Files written before a later disk failure are not retracted; batch
// extension validation has already run, so the only way to get here with a
// partial batch is a filesystem error, which aborts the whole request.
// PRE: upload.ValidateBatch(ups) returned nil
// POST: One file on disk per upload; paths returned in input order
func storeBatch(files FileStore, prefix string, ups []upload.Upload, now func() time.Time) ([]string, error) {
	var paths []string
	for _, u := range ups {
		p, err := files.Save(u.UniqueName(prefix, now()), u.Content)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
