package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	memberStore "mikrobot/internal/adapters/storage/member"
	domain "mikrobot/internal/domain/member"
	"mikrobot/internal/domain/upload"
)

// MemberDeps holds dependencies shared by the member orchestrators.
type MemberDeps struct {
	MemberStore memberStore.Store
	Files       FileStore
	Now         func() time.Time // injectable for testing
}

func (d MemberDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// MemberInput carries form input for add and update. Photo is optional;
// a nil Photo on update keeps the existing one.
type MemberInput struct {
	ID          int64 // ignored on add
	Name        string
	Role        string
	Description string
	Category    string
	Photo       *upload.Upload
}

// toDomain trims the form input. The category is stored as submitted; the
// roster page maps unrecognized values to the regular group at render time.
func (in MemberInput) toDomain() domain.Member {
	return domain.Member{
		ID:          in.ID,
		Name:        strings.TrimSpace(in.Name),
		Role:        strings.TrimSpace(in.Role),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
	}
}

// ExecuteAddMember validates the input and optional photo, stores the
// photo under a member_ name, and inserts the row.
func ExecuteAddMember(ctx context.Context, input MemberInput, deps MemberDeps) (domain.Member, error) {
	m := input.toDomain()
	if err := m.Validate(); err != nil {
		return domain.Member{}, err
	}
	if input.Photo != nil {
		if err := input.Photo.Validate(); err != nil {
			return domain.Member{}, err
		}
		path, err := deps.Files.Save(input.Photo.UniqueName("member_", deps.now()), input.Photo.Content)
		if err != nil {
			return domain.Member{}, err
		}
		m.Photo = path
	}

	created, err := deps.MemberStore.Create(ctx, m)
	if err != nil {
		return domain.Member{}, err
	}
	slog.Info("member_event", "event", "member_added", "member_id", created.ID, "has_photo", m.Photo != "")
	return created, nil
}

// ExecuteUpdateMember rewrites the fields; when a new photo is supplied the
// old file is removed from disk after the row points at the new one.
// PRE: input.ID refers to an existing member
func ExecuteUpdateMember(ctx context.Context, input MemberInput, deps MemberDeps) error {
	existing, err := deps.MemberStore.GetByID(ctx, input.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	m := input.toDomain()
	m.Photo = existing.Photo
	if err := m.Validate(); err != nil {
		return err
	}

	oldPhoto := ""
	if input.Photo != nil {
		if err := input.Photo.Validate(); err != nil {
			return err
		}
		path, err := deps.Files.Save(input.Photo.UniqueName("member_", deps.now()), input.Photo.Content)
		if err != nil {
			return err
		}
		oldPhoto = existing.Photo
		m.Photo = path
	}

	if err := deps.MemberStore.Update(ctx, m); err != nil {
		return err
	}
	if oldPhoto != "" {
		if err := deps.Files.Remove(oldPhoto); err != nil {
			return err
		}
	}
	slog.Info("member_event", "event", "member_updated", "member_id", m.ID, "photo_replaced", oldPhoto != "")
	return nil
}

// ExecuteDeleteMember removes the row and the photo file, if any.
// PRE: id refers to an existing member
func ExecuteDeleteMember(ctx context.Context, id int64, deps MemberDeps) error {
	m, err := deps.MemberStore.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := deps.Files.Remove(m.Photo); err != nil {
		return err
	}
	if err := deps.MemberStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("member_event", "event", "member_deleted", "member_id", id)
	return nil
}
