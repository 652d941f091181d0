package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	pubStore "mikrobot/internal/adapters/storage/publication"
	domain "mikrobot/internal/domain/publication"
	"mikrobot/internal/domain/upload"
)

// PublicationDeps holds dependencies shared by the publication orchestrators.
type PublicationDeps struct {
	PublicationStore pubStore.Store
	Files            FileStore
	Now              func() time.Time // injectable for testing
}

func (d PublicationDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// PublicationInput carries form input for create and update.
type PublicationInput struct {
	ID          int64 // ignored on create
	Title       string
	Description string
	Date        string
	Uploads     []upload.Upload
}

func (in PublicationInput) toDomain() domain.Publication {
	return domain.Publication{
		ID:          in.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        strings.TrimSpace(in.Date),
	}
}

// ExecuteCreatePublication validates the input and the whole upload batch,
// then inserts the row. Stored filenames embed the assigned row id, so the
// files are written from inside the store transaction via the attach hook.
// POST: Either the row, its attachments, and the files all exist, or no row was written
func ExecuteCreatePublication(ctx context.Context, input PublicationInput, deps PublicationDeps) (domain.Publication, error) {
	p := input.toDomain()
	if err := p.Validate(); err != nil {
		return domain.Publication{}, err
	}
	if err := upload.ValidateBatch(input.Uploads); err != nil {
		return domain.Publication{}, err
	}

	created, err := deps.PublicationStore.Create(ctx, p, func(id int64) ([]string, error) {
		return storeBatch(deps.Files, fmt.Sprintf("pub_%d_", id), input.Uploads, deps.now)
	})
	if err != nil {
		return domain.Publication{}, err
	}
	slog.Info("publication_event", "event", "publication_created", "publication_id", created.ID, "images", len(input.Uploads))
	return created, nil
}

// ExecuteUpdatePublication rewrites the fields and appends the accepted uploads.
// PRE: input.ID refers to an existing publication
func ExecuteUpdatePublication(ctx context.Context, input PublicationInput, deps PublicationDeps) error {
	if _, err := deps.PublicationStore.GetByID(ctx, input.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	p := input.toDomain()
	if err := p.Validate(); err != nil {
		return err
	}
	if err := upload.ValidateBatch(input.Uploads); err != nil {
		return err
	}

	paths, err := storeBatch(deps.Files, fmt.Sprintf("pub_%d_", p.ID), input.Uploads, deps.now)
	if err != nil {
		return err
	}
	if err := deps.PublicationStore.Update(ctx, p, paths); err != nil {
		return err
	}
	slog.Info("publication_event", "event", "publication_updated", "publication_id", p.ID, "new_images", len(paths))
	return nil
}

// ExecuteDeletePublication removes the row, its attachment rows, and their
// files. Files are enumerated before the row goes away because cascade
// removes the rows that know which files exist.
// PRE: id refers to an existing publication
func ExecuteDeletePublication(ctx context.Context, id int64, deps PublicationDeps) error {
	if _, err := deps.PublicationStore.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	images, err := deps.PublicationStore.Images(ctx, id)
	if err != nil {
		return err
	}
	for _, img := range images {
		if err := deps.Files.Remove(img.Path); err != nil {
			return err
		}
	}
	if err := deps.PublicationStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("publication_event", "event", "publication_deleted", "publication_id", id, "images", len(images))
	return nil
}

// ExecuteDeletePublicationImage detaches a single image, file first.
// POST: Returns the owning publication id for redirecting
func ExecuteDeletePublicationImage(ctx context.Context, imageID int64, deps PublicationDeps) (int64, error) {
	img, err := deps.PublicationStore.GetImage(ctx, imageID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if err := deps.Files.Remove(img.Path); err != nil {
		return 0, err
	}
	if err := deps.PublicationStore.DeleteImage(ctx, imageID); err != nil {
		return 0, err
	}
	slog.Info("publication_event", "event", "publication_image_deleted", "publication_id", img.PublicationID, "image_id", imageID)
	return img.PublicationID, nil
}
