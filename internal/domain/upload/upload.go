package upload

import (
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// AllowedExtensions is the upload allow-list. Anything else is rejected
// before any row or file is written.
var AllowedExtensions = []string{"png", "jpg", "jpeg", "gif"}

// Domain errors
var (
	ErrUnsupportedFileType = errors.New("unsupported file type: allowed are png, jpg, jpeg, gif")
	ErrEmptyFilename       = errors.New("upload filename cannot be empty")
)

// Upload is a file-like input carrying the original filename and content.
// Handlers build these from multipart form parts.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Ext returns the lowercased extension of name without the dot, or "" when
// the name has no extension.
// PRE: none
// POST: Returns "" or a lowercase extension
func Ext(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// Allowed reports whether the filename carries an allow-listed extension.
// INVARIANT: AllowedExtensions is not mutated
func Allowed(name string) bool {
	ext := Ext(name)
	for _, a := range AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// SanitizeName strips path components and unsafe characters from an
// uploaded filename, keeping only letters, digits, dot, dash, and
// underscore. Leading dots are dropped so the result is never hidden or
// empty-stemmed.
// PRE: none
// POST: Returns a name safe to join under the upload directory
func SanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimLeft(b.String(), ".")
}

// Validate checks a single upload against the allow-list.
// PRE: u.Filename is the client-supplied name
// POST: Returns nil, ErrEmptyFilename, or ErrUnsupportedFileType
func (u Upload) Validate() error {
	name := SanitizeName(u.Filename)
	if name == "" {
		return ErrEmptyFilename
	}
	if !Allowed(name) {
		return ErrUnsupportedFileType
	}
	return nil
}

// ValidateBatch checks every upload before anything touches disk or the
// database. A single bad file rejects the whole batch.
// PRE: none
// POST: Returns nil only if every upload passes Validate
func ValidateBatch(uploads []Upload) error {
	for _, u := range uploads {
		if err := u.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// timestampLayout has microsecond precision so multiple files stored in the
// same request get distinct names.
const timestampLayout = "20060102150405.000000"

// UniqueName builds the stored filename for an upload: a logical prefix
// (member_, ach_<id>_, pub_<id>_, news_[<id>_]), a sub-second timestamp,
// and the original lowercase extension.
// PRE: u has passed Validate; prefix ends with "_"
// POST: Returns a filename unique for practical purposes within the prefix
func (u Upload) UniqueName(prefix string, now time.Time) string {
	ts := strings.Replace(now.Format(timestampLayout), ".", "", 1)
	return prefix + ts + "." + Ext(SanitizeName(u.Filename))
}
