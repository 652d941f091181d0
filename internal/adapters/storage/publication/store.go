package publication

import (
	"context"

	domain "mikrobot/internal/domain/publication"
)

// Store persists Publication state and its image attachments.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Publication, error)
	// List returns publications ordered by date DESC, id DESC.
	List(ctx context.Context) ([]domain.Publication, error)
	// Create inserts the publication and its image rows in one transaction.
	// attach is called with the assigned id (stored filenames embed it) and
	// returns the stored paths to record; an attach error rolls the row back.
	Create(ctx context.Context, p domain.Publication, attach func(id int64) ([]string, error)) (domain.Publication, error)
	// Update rewrites the fields and appends image rows in one transaction.
	Update(ctx context.Context, p domain.Publication, newImagePaths []string) error
	Delete(ctx context.Context, id int64) error
	Images(ctx context.Context, publicationID int64) ([]domain.Image, error)
	GetImage(ctx context.Context, imageID int64) (domain.Image, error)
	DeleteImage(ctx context.Context, imageID int64) error
}
