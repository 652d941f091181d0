package news

import "errors"

// Domain errors
var (
	ErrEmptyTitle   = errors.New("news title cannot be empty")
	ErrEmptyContent = errors.New("news content cannot be empty")
)

// News is a dated post on the public feed. Thumbnail is a denormalized
// pointer to one attached image (or a legacy standalone file); empty means
// no thumbnail. Content supports Markdown formatting.
type News struct {
	ID         int64
	Title      string
	Content    string
	DatePosted string // YYYY-MM-DD
	Thumbnail  string
}

// Image is one uploaded file attached to a news item. IDs are assigned in
// insertion order by the store; thumbnail re-selection relies on that.
type Image struct {
	ID     int64
	NewsID int64
	Path   string // relative to the static root, e.g. uploads/news_...
}

// Validate checks required fields.
// PRE: News struct is populated
// POST: Returns nil if valid, error otherwise
func (n *News) Validate() error {
	if n.Title == "" {
		return ErrEmptyTitle
	}
	if n.Content == "" {
		return ErrEmptyContent
	}
	return nil
}

// SelectThumbnail decides the thumbnail after a batch of uploads was
// accepted: the first accepted file wins, otherwise the existing value is
// preserved.
// PRE: accepted holds stored paths in upload order
// POST: Returns the new thumbnail path ("" = none)
func SelectThumbnail(existing string, accepted []string) string {
	if len(accepted) > 0 {
		return accepted[0]
	}
	return existing
}

// NextThumbnail re-selects the thumbnail after the image at deletedPath was
// detached: the lowest-id remaining attachment, or "" when none remain. A
// thumbnail that never pointed at the deleted image is kept as is.
// PRE: remaining excludes the deleted image
// POST: Returned path never references the deleted image
func NextThumbnail(current, deletedPath string, remaining []Image) string {
	if current != deletedPath {
		return current
	}
	var lowest *Image
	for i := range remaining {
		if lowest == nil || remaining[i].ID < lowest.ID {
			lowest = &remaining[i]
		}
	}
	if lowest == nil {
		return ""
	}
	return lowest.Path
}
