package publication

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	_ "modernc.org/sqlite"

	"mikrobot/internal/adapters/storage"
	domain "mikrobot/internal/domain/publication"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	return NewSQLiteStore(db)
}

func TestCreateWithAttachSeesAssignedID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var seenID int64
	created, err := store.Create(ctx, domain.Publication{
		Title: "Artykuł", Description: "Opis", Date: "2024-11-05",
	}, func(id int64) ([]string, error) {
		seenID = id
		return []string{fmt.Sprintf("uploads/pub_%d_x.png", id)}, nil
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if seenID != created.ID || created.ID == 0 {
		t.Errorf("attach saw id %d, row got %d", seenID, created.ID)
	}

	images, err := store.Images(ctx, created.ID)
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	if len(images) != 1 || images[0].Path != fmt.Sprintf("uploads/pub_%d_x.png", created.ID) {
		t.Errorf("images = %+v", images)
	}
}

func TestDeleteCascadesImageRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, domain.Publication{
		Title: "Artykuł", Description: "Opis", Date: "2024-11-05",
	}, func(id int64) ([]string, error) {
		return []string{"uploads/pub_1_a.png", "uploads/pub_1_b.png"}, nil
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	images, err := store.Images(ctx, created.ID)
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("image rows survived the cascade: %+v", images)
	}
}

func TestGetUnknownIDReturnsNoRows(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetByID(context.Background(), 999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
