package news

import (
	"context"

	domain "mikrobot/internal/domain/news"
)

// Store persists News state and its image attachments.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.News, error)
	// List returns news ordered by date_posted DESC, id DESC. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]domain.News, error)
	// Create inserts the news row and one image row per path in one transaction.
	Create(ctx context.Context, n domain.News, imagePaths []string) (domain.News, error)
	// Update rewrites title, content, and thumbnail, and appends image rows
	// for newImagePaths, all in one transaction.
	Update(ctx context.Context, n domain.News, newImagePaths []string) error
	Delete(ctx context.Context, id int64) error
	Images(ctx context.Context, newsID int64) ([]domain.Image, error)
	GetImage(ctx context.Context, imageID int64) (domain.Image, error)
	// DeleteImage removes the image row and, when it was the owning news
	// item's thumbnail, repoints the thumbnail to the lowest-id remaining
	// attachment (or clears it) in the same transaction.
	DeleteImage(ctx context.Context, imageID int64) error
	// HasImagePath reports whether the news item has an attachment row with
	// the given path (used to tell legacy thumbnail-only files apart).
	HasImagePath(ctx context.Context, newsID int64, path string) (bool, error)
}
