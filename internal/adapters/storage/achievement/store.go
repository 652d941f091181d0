package achievement

import (
	"context"

	domain "mikrobot/internal/domain/achievement"
)

// Store persists Achievement state and its image attachments.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Achievement, error)
	// List returns achievements ordered by date DESC, id DESC.
	List(ctx context.Context) ([]domain.Achievement, error)
	// Create inserts the achievement and its image rows in one transaction.
	// attach is called with the assigned id (stored filenames embed it) and
	// returns the stored paths to record; an attach error rolls the row back.
	Create(ctx context.Context, a domain.Achievement, attach func(id int64) ([]string, error)) (domain.Achievement, error)
	// Update rewrites the fields and appends image rows in one transaction.
	Update(ctx context.Context, a domain.Achievement, newImagePaths []string) error
	Delete(ctx context.Context, id int64) error
	Images(ctx context.Context, achievementID int64) ([]domain.Image, error)
	GetImage(ctx context.Context, imageID int64) (domain.Image, error)
	DeleteImage(ctx context.Context, imageID int64) error
}
