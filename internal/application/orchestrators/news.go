package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	newsStore "mikrobot/internal/adapters/storage/news"
	domain "mikrobot/internal/domain/news"
	"mikrobot/internal/domain/upload"
)

// NewsDeps holds dependencies shared by the news orchestrators.
type NewsDeps struct {
	NewsStore newsStore.Store
	Files     FileStore
	Now       func() time.Time // injectable for testing
}

func (d NewsDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// CreateNewsInput carries input for ExecuteCreateNews.
type CreateNewsInput struct {
	Title   string
	Content string
	Uploads []upload.Upload
}

// ExecuteCreateNews validates the whole upload batch, stores the files,
// inserts the news row plus one attachment row per file in one transaction,
// and designates the first stored file as the thumbnail.
// PRE: none
// POST: Either the row, its attachments, and the files all exist, or no row was written
func ExecuteCreateNews(ctx context.Context, input CreateNewsInput, deps NewsDeps) (domain.News, error) {
	n := domain.News{
		Title:      strings.TrimSpace(input.Title),
		Content:    strings.TrimSpace(input.Content),
		DatePosted: deps.now().Format("2006-01-02"),
	}
	if err := n.Validate(); err != nil {
		return domain.News{}, err
	}
	if err := upload.ValidateBatch(input.Uploads); err != nil {
		return domain.News{}, err
	}

	paths, err := storeBatch(deps.Files, "news_", input.Uploads, deps.now)
	if err != nil {
		return domain.News{}, err
	}
	n.Thumbnail = domain.SelectThumbnail("", paths)

	created, err := deps.NewsStore.Create(ctx, n, paths)
	if err != nil {
		return domain.News{}, err
	}
	slog.Info("news_event", "event", "news_created", "news_id", created.ID, "images", len(paths))
	return created, nil
}

// UpdateNewsInput carries input for ExecuteUpdateNews.
type UpdateNewsInput struct {
	ID      int64
	Title   string
	Content string
	Uploads []upload.Upload
}

// ExecuteUpdateNews rewrites title and content and appends the accepted
// uploads. When at least one new file is accepted, the first one becomes
// the new thumbnail; the previous thumbnail's file is reclaimed from disk
// only when no attachment row still references it (a legacy standalone
// thumbnail).
// PRE: input.ID refers to an existing news item
// POST: Thumbnail never references a missing file
func ExecuteUpdateNews(ctx context.Context, input UpdateNewsInput, deps NewsDeps) error {
	n, err := deps.NewsStore.GetByID(ctx, input.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	n.Title = strings.TrimSpace(input.Title)
	n.Content = strings.TrimSpace(input.Content)
	if err := n.Validate(); err != nil {
		return err
	}
	if err := upload.ValidateBatch(input.Uploads); err != nil {
		return err
	}

	prefix := fmt.Sprintf("news_%d_", n.ID)
	paths, err := storeBatch(deps.Files, prefix, input.Uploads, deps.now)
	if err != nil {
		return err
	}

	oldThumb := n.Thumbnail
	n.Thumbnail = domain.SelectThumbnail(oldThumb, paths)

	if err := deps.NewsStore.Update(ctx, n, paths); err != nil {
		return err
	}

	// Reclaim the replaced thumbnail file unless a gallery row still needs it.
	if n.Thumbnail != oldThumb && oldThumb != "" {
		referenced, err := deps.NewsStore.HasImagePath(ctx, n.ID, oldThumb)
		if err != nil {
			return err
		}
		if !referenced {
			if err := deps.Files.Remove(oldThumb); err != nil {
				return err
			}
		}
	}

	slog.Info("news_event", "event", "news_updated", "news_id", n.ID, "new_images", len(paths))
	return nil
}

// ExecuteDeleteNews removes a news item, its attachment rows, and all the
// files they point at. Files are enumerated before the row goes away:
// cascade removes the rows that know which files exist.
// PRE: id refers to an existing news item
// POST: Row, attachment rows, and files are gone
func ExecuteDeleteNews(ctx context.Context, id int64, deps NewsDeps) error {
	n, err := deps.NewsStore.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	images, err := deps.NewsStore.Images(ctx, id)
	if err != nil {
		return err
	}
	for _, img := range images {
		if err := deps.Files.Remove(img.Path); err != nil {
			return err
		}
	}

	// A legacy thumbnail has no attachment row, so cascade would orphan its
	// file; one that is also an attachment was already removed above.
	if n.Thumbnail != "" {
		referenced, err := deps.NewsStore.HasImagePath(ctx, id, n.Thumbnail)
		if err != nil {
			return err
		}
		if !referenced {
			if err := deps.Files.Remove(n.Thumbnail); err != nil {
				return err
			}
		}
	}

	if err := deps.NewsStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("news_event", "event", "news_deleted", "news_id", id, "images", len(images))
	return nil
}

// ExecuteDeleteNewsImage detaches a single image. The file is removed
// first (a missing file is tolerated, the row is the source of truth),
// then the row is deleted and the thumbnail repointed in one transaction.
// PRE: imageID refers to an existing attachment
// POST: Returns the owning news id for redirecting; thumbnail never dangles
func ExecuteDeleteNewsImage(ctx context.Context, imageID int64, deps NewsDeps) (int64, error) {
	img, err := deps.NewsStore.GetImage(ctx, imageID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if err := deps.Files.Remove(img.Path); err != nil {
		return 0, err
	}
	if err := deps.NewsStore.DeleteImage(ctx, imageID); err != nil {
		return 0, err
	}
	slog.Info("news_event", "event", "news_image_deleted", "news_id", img.NewsID, "image_id", imageID)
	return img.NewsID, nil
}
