package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	achStore "mikrobot/internal/adapters/storage/achievement"
	domain "mikrobot/internal/domain/achievement"
	"mikrobot/internal/domain/upload"
)

// AchievementDeps holds dependencies shared by the achievement orchestrators.
type AchievementDeps struct {
	AchievementStore achStore.Store
	Files            FileStore
	Now              func() time.Time // injectable for testing
}

func (d AchievementDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// AchievementInput carries form input for create and update.
type AchievementInput struct {
	ID          int64 // ignored on create
	Title       string
	Description string
	Date        string
	Uploads     []upload.Upload
}

func (in AchievementInput) toDomain() domain.Achievement {
	return domain.Achievement{
		ID:          in.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        strings.TrimSpace(in.Date),
	}
}

// ExecuteCreateAchievement validates the input and the whole upload batch,
// then inserts the row. Stored filenames embed the assigned row id, so the
// files are written from inside the store transaction via the attach hook.
// POST: Either the row, its attachments, and the files all exist, or no row was written
func ExecuteCreateAchievement(ctx context.Context, input AchievementInput, deps AchievementDeps) (domain.Achievement, error) {
	a := input.toDomain()
	if err := a.Validate(); err != nil {
		return domain.Achievement{}, err
	}
	if err := upload.ValidateBatch(input.Uploads); err != nil {
		return domain.Achievement{}, err
	}

	created, err := deps.AchievementStore.Create(ctx, a, func(id int64) ([]string, error) {
		return storeBatch(deps.Files, fmt.Sprintf("ach_%d_", id), input.Uploads, deps.now)
	})
	if err != nil {
		return domain.Achievement{}, err
	}
	slog.Info("achievement_event", "event", "achievement_created", "achievement_id", created.ID, "images", len(input.Uploads))
	return created, nil
}

// ExecuteUpdateAchievement rewrites the fields and appends the accepted uploads.
// PRE: input.ID refers to an existing achievement
func ExecuteUpdateAchievement(ctx context.Context, input AchievementInput, deps AchievementDeps) error {
	if _, err := deps.AchievementStore.GetByID(ctx, input.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	a := input.toDomain()
	if err := a.Validate(); err != nil {
		return err
	}
	if err := upload.ValidateBatch(input.Uploads); err != nil {
		return err
	}

	paths, err := storeBatch(deps.Files, fmt.Sprintf("ach_%d_", a.ID), input.Uploads, deps.now)
	if err != nil {
		return err
	}
	if err := deps.AchievementStore.Update(ctx, a, paths); err != nil {
		return err
	}
	slog.Info("achievement_event", "event", "achievement_updated", "achievement_id", a.ID, "new_images", len(paths))
	return nil
}

// ExecuteDeleteAchievement removes the row, its attachment rows, and their
// files. Files are enumerated before the row goes away because cascade
// removes the rows that know which files exist.
// PRE: id refers to an existing achievement
func ExecuteDeleteAchievement(ctx context.Context, id int64, deps AchievementDeps) error {
	if _, err := deps.AchievementStore.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	images, err := deps.AchievementStore.Images(ctx, id)
	if err != nil {
		return err
	}
	for _, img := range images {
		if err := deps.Files.Remove(img.Path); err != nil {
			return err
		}
	}
	if err := deps.AchievementStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("achievement_event", "event", "achievement_deleted", "achievement_id", id, "images", len(images))
	return nil
}

// ExecuteDeleteAchievementImage detaches a single image, file first.
// POST: Returns the owning achievement id for redirecting
func ExecuteDeleteAchievementImage(ctx context.Context, imageID int64, deps AchievementDeps) (int64, error) {
	img, err := deps.AchievementStore.GetImage(ctx, imageID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if err := deps.Files.Remove(img.Path); err != nil {
		return 0, err
	}
	if err := deps.AchievementStore.DeleteImage(ctx, imageID); err != nil {
		return 0, err
	}
	slog.Info("achievement_event", "event", "achievement_image_deleted", "achievement_id", img.AchievementID, "image_id", imageID)
	return img.AchievementID, nil
}
