package publication

import "errors"

// Domain errors
var (
	ErrEmptyTitle       = errors.New("publication title cannot be empty")
	ErrEmptyDescription = errors.New("publication description cannot be empty")
	ErrEmptyDate        = errors.New("publication date cannot be empty")
)

// Publication is a paper or conference appearance shown on the public
// showcase page next to achievements.
type Publication struct {
	ID          int64
	Title       string
	Description string
	Date        string // free-text, typically YYYY-MM-DD
}

// Image is one uploaded file attached to a publication.
type Image struct {
	ID            int64
	PublicationID int64
	Path          string
}

// Validate checks required fields.
// PRE: Publication struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Publication) Validate() error {
	if p.Title == "" {
		return ErrEmptyTitle
	}
	if p.Description == "" {
		return ErrEmptyDescription
	}
	if p.Date == "" {
		return ErrEmptyDate
	}
	return nil
}
