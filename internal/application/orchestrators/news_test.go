package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	newsdom "mikrobot/internal/domain/news"
	"mikrobot/internal/domain/upload"
)

func TestCreateNewsSetsThumbnailFromFirstUpload(t *testing.T) {
	store := newMockNewsStore()
	files := &mockFiles{}
	deps := NewsDeps{NewsStore: store, Files: files, Now: tick()}

	created, err := ExecuteCreateNews(context.Background(), CreateNewsInput{
		Title:   "Start projektu",
		Content: "Ruszamy z nowym projektem.",
		Uploads: []upload.Upload{fileUpload("a.png"), fileUpload("b.jpg")},
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteCreateNews: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if len(files.saved) != 2 {
		t.Fatalf("expected 2 stored files, got %d", len(files.saved))
	}
	if created.Thumbnail != files.saved[0] {
		t.Errorf("thumbnail = %q, want first stored file %q", created.Thumbnail, files.saved[0])
	}
	if !strings.HasPrefix(files.saved[0], "uploads/news_") {
		t.Errorf("stored name %q does not carry the news_ prefix", files.saved[0])
	}

	images, _ := store.Images(context.Background(), created.ID)
	if len(images) != 2 {
		t.Fatalf("expected 2 attachment rows, got %d", len(images))
	}
}

func TestCreateNewsRejectsBatchWithOneBadExtension(t *testing.T) {
	store := newMockNewsStore()
	files := &mockFiles{}
	deps := NewsDeps{NewsStore: store, Files: files, Now: tick()}

	_, err := ExecuteCreateNews(context.Background(), CreateNewsInput{
		Title:   "Tytuł",
		Content: "Treść",
		Uploads: []upload.Upload{fileUpload("ok.png"), fileUpload("malware.exe")},
	}, deps)
	if !errors.Is(err, upload.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
	if len(files.saved) != 0 {
		t.Errorf("no file may be written when the batch is rejected, got %d", len(files.saved))
	}
	if len(store.items) != 0 {
		t.Errorf("no row may be written when the batch is rejected, got %d", len(store.items))
	}
}

func TestCreateNewsWithoutUploadsHasNoThumbnail(t *testing.T) {
	store := newMockNewsStore()
	deps := NewsDeps{NewsStore: store, Files: &mockFiles{}, Now: tick()}

	created, err := ExecuteCreateNews(context.Background(), CreateNewsInput{
		Title:   "Bez zdjęć",
		Content: "Sam tekst.",
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteCreateNews: %v", err)
	}
	if created.Thumbnail != "" {
		t.Errorf("thumbnail = %q, want empty", created.Thumbnail)
	}
}

func TestUpdateNewsRepointsThumbnailAndKeepsAttachedOldFile(t *testing.T) {
	store := newMockNewsStore()
	files := &mockFiles{}
	deps := NewsDeps{NewsStore: store, Files: files, Now: tick()}

	created, err := ExecuteCreateNews(context.Background(), CreateNewsInput{
		Title:   "Wpis",
		Content: "Treść",
		Uploads: []upload.Upload{fileUpload("old.png")},
	}, deps)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldThumb := created.Thumbnail

	err = ExecuteUpdateNews(context.Background(), UpdateNewsInput{
		ID:      created.ID,
		Title:   "Wpis po zmianie",
		Content: "Nowa treść",
		Uploads: []upload.Upload{fileUpload("new.jpg")},
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteUpdateNews: %v", err)
	}

	got, _ := store.GetByID(context.Background(), created.ID)
	if got.Thumbnail == oldThumb {
		t.Error("thumbnail was not repointed to the new upload")
	}
	// The old thumbnail is still an attachment row, so its file stays.
	for _, r := range files.removed {
		if r == oldThumb {
			t.Errorf("old thumbnail file %q was removed despite an attachment row referencing it", oldThumb)
		}
	}
	if !strings.HasPrefix(got.Thumbnail, "uploads/news_") || !strings.Contains(got.Thumbnail, "_") {
		t.Errorf("new thumbnail %q lacks the news_<id>_ prefix", got.Thumbnail)
	}
}

func TestUpdateNewsReclaimsLegacyThumbnailFile(t *testing.T) {
	store := newMockNewsStore()
	files := &mockFiles{}
	deps := NewsDeps{NewsStore: store, Files: files, Now: tick()}

	// Simulate an item migrated from the time before attachment rows: the
	// thumbnail points at a file no row references.
	created, _ := store.Create(context.Background(), newsdom.News{
		Title: "Stary wpis", Content: "Treść", DatePosted: "2024-01-01",
		Thumbnail: "uploads/news_legacy.png",
	}, nil)

	err := ExecuteUpdateNews(context.Background(), UpdateNewsInput{
		ID:      created.ID,
		Title:   "Stary wpis",
		Content: "Treść",
		Uploads: []upload.Upload{fileUpload("fresh.png")},
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteUpdateNews: %v", err)
	}

	found := false
	for _, r := range files.removed {
		if r == "uploads/news_legacy.png" {
			found = true
		}
	}
	if !found {
		t.Error("legacy thumbnail file was not reclaimed")
	}
}

func TestUpdateNewsUnknownIDReturnsNotFound(t *testing.T) {
	deps := NewsDeps{NewsStore: newMockNewsStore(), Files: &mockFiles{}, Now: tick()}
	err := ExecuteUpdateNews(context.Background(), UpdateNewsInput{ID: 99, Title: "x", Content: "y"}, deps)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNewsRemovesRowsAndFiles(t *testing.T) {
	store := newMockNewsStore()
	files := &mockFiles{}
	deps := NewsDeps{NewsStore: store, Files: files, Now: tick()}

	created, err := ExecuteCreateNews(context.Background(), CreateNewsInput{
		Title:   "Do usunięcia",
		Content: "Treść",
		Uploads: []upload.Upload{fileUpload("a.png"), fileUpload("b.gif")},
	}, deps)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := ExecuteDeleteNews(context.Background(), created.ID, deps); err != nil {
		t.Fatalf("ExecuteDeleteNews: %v", err)
	}
	if len(store.items) != 0 || len(store.images) != 0 {
		t.Error("rows were not removed")
	}
	if len(files.removed) != 2 {
		t.Errorf("expected 2 removed files, got %d (%v)", len(files.removed), files.removed)
	}
}

func TestDeleteNewsReclaimsLegacyThumbnail(t *testing.T) {
	store := newMockNewsStore()
	files := &mockFiles{}
	deps := NewsDeps{NewsStore: store, Files: files, Now: tick()}

	created, _ := store.Create(context.Background(), newsdom.News{
		Title: "Stary", Content: "Treść", DatePosted: "2024-01-01",
		Thumbnail: "uploads/news_legacy.png",
	}, nil)

	if err := ExecuteDeleteNews(context.Background(), created.ID, deps); err != nil {
		t.Fatalf("ExecuteDeleteNews: %v", err)
	}
	if len(files.removed) != 1 || files.removed[0] != "uploads/news_legacy.png" {
		t.Errorf("legacy thumbnail not reclaimed, removed = %v", files.removed)
	}
}

func TestDeleteNewsImageRepointsThumbnail(t *testing.T) {
	store := newMockNewsStore()
	files := &mockFiles{}
	deps := NewsDeps{NewsStore: store, Files: files, Now: tick()}

	created, err := ExecuteCreateNews(context.Background(), CreateNewsInput{
		Title:   "Galeria",
		Content: "Treść",
		Uploads: []upload.Upload{fileUpload("first.png"), fileUpload("second.png")},
	}, deps)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	images, _ := store.Images(context.Background(), created.ID)
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}

	newsID, err := ExecuteDeleteNewsImage(context.Background(), images[0].ID, deps)
	if err != nil {
		t.Fatalf("ExecuteDeleteNewsImage: %v", err)
	}
	if newsID != created.ID {
		t.Errorf("returned news id = %d, want %d", newsID, created.ID)
	}

	got, _ := store.GetByID(context.Background(), created.ID)
	if got.Thumbnail != images[1].Path {
		t.Errorf("thumbnail = %q, want repointed to %q", got.Thumbnail, images[1].Path)
	}
	if len(files.removed) != 1 || files.removed[0] != images[0].Path {
		t.Errorf("removed = %v, want exactly the deleted image's file", files.removed)
	}
}

func TestDeleteLastNewsImageClearsThumbnail(t *testing.T) {
	store := newMockNewsStore()
	deps := NewsDeps{NewsStore: store, Files: &mockFiles{}, Now: tick()}

	created, err := ExecuteCreateNews(context.Background(), CreateNewsInput{
		Title:   "Jedno zdjęcie",
		Content: "Treść",
		Uploads: []upload.Upload{fileUpload("only.png")},
	}, deps)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	images, _ := store.Images(context.Background(), created.ID)

	if _, err := ExecuteDeleteNewsImage(context.Background(), images[0].ID, deps); err != nil {
		t.Fatalf("ExecuteDeleteNewsImage: %v", err)
	}
	got, _ := store.GetByID(context.Background(), created.ID)
	if got.Thumbnail != "" {
		t.Errorf("thumbnail = %q, want cleared", got.Thumbnail)
	}
}
