package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	memberdom "mikrobot/internal/domain/member"
)

func TestAddMemberStoresPhotoUnderMemberPrefix(t *testing.T) {
	store := newMockMemberStore()
	files := &mockFiles{}
	deps := MemberDeps{MemberStore: store, Files: files, Now: tick()}

	photo := fileUpload("portret.jpg")
	created, err := ExecuteAddMember(context.Background(), MemberInput{
		Name: "Anna Kowalska", Role: "Przewodnicząca",
		Description: "Studentka automatyki.", Category: "zarząd",
		Photo: &photo,
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteAddMember: %v", err)
	}
	if !strings.HasPrefix(created.Photo, "uploads/member_") {
		t.Errorf("photo path %q lacks the member_ prefix", created.Photo)
	}
}

func TestAddMemberWithoutPhoto(t *testing.T) {
	store := newMockMemberStore()
	deps := MemberDeps{MemberStore: store, Files: &mockFiles{}, Now: tick()}

	created, err := ExecuteAddMember(context.Background(), MemberInput{
		Name: "Jan Nowak", Role: "Członek",
		Description: "Entuzjasta elektroniki.", Category: "członek",
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteAddMember: %v", err)
	}
	if created.Photo != "" {
		t.Errorf("photo = %q, want empty", created.Photo)
	}
}

func TestAddMemberStoresCategoryAsSubmitted(t *testing.T) {
	store := newMockMemberStore()
	deps := MemberDeps{MemberStore: store, Files: &mockFiles{}, Now: tick()}

	created, err := ExecuteAddMember(context.Background(), MemberInput{
		Name: "Ola Ptak", Role: "Członek",
		Description: "Projektuje PCB.", Category: "prezes wszechświata",
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteAddMember: %v", err)
	}
	// Stored verbatim; the roster page folds it into the regular group.
	if created.Category != "prezes wszechświata" {
		t.Errorf("category = %q, want the submitted value", created.Category)
	}
	if got := memberdom.NormalizeCategory(created.Category); got != memberdom.CategoryRegular {
		t.Errorf("display category = %q, want %q", got, memberdom.CategoryRegular)
	}
}

func TestAddMemberEmptyCategoryRejected(t *testing.T) {
	store := newMockMemberStore()
	deps := MemberDeps{MemberStore: store, Files: &mockFiles{}, Now: tick()}

	_, err := ExecuteAddMember(context.Background(), MemberInput{
		Name: "Ola Ptak", Role: "Członek",
		Description: "Projektuje PCB.", Category: "  ",
	}, deps)
	if !errors.Is(err, memberdom.ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
	if len(store.items) != 0 {
		t.Errorf("no row may be created, got %d", len(store.items))
	}
}

func TestUpdateMemberReplacingPhotoRemovesOldFile(t *testing.T) {
	store := newMockMemberStore()
	files := &mockFiles{}
	deps := MemberDeps{MemberStore: store, Files: files, Now: tick()}

	old := fileUpload("old.png")
	created, err := ExecuteAddMember(context.Background(), MemberInput{
		Name: "Marek Zając", Role: "Członek",
		Description: "Pasjonat AI.", Category: "członek",
		Photo: &old,
	}, deps)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	oldPath := created.Photo

	fresh := fileUpload("new.png")
	err = ExecuteUpdateMember(context.Background(), MemberInput{
		ID: created.ID, Name: "Marek Zając", Role: "Członek",
		Description: "Pasjonat AI.", Category: "członek",
		Photo: &fresh,
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteUpdateMember: %v", err)
	}

	got, _ := store.GetByID(context.Background(), created.ID)
	if got.Photo == oldPath {
		t.Error("photo was not replaced")
	}
	if len(files.removed) != 1 || files.removed[0] != oldPath {
		t.Errorf("removed = %v, want the old photo %q", files.removed, oldPath)
	}
}

func TestUpdateMemberWithoutPhotoKeepsExisting(t *testing.T) {
	store := newMockMemberStore()
	files := &mockFiles{}
	deps := MemberDeps{MemberStore: store, Files: files, Now: tick()}

	photo := fileUpload("stale.png")
	created, err := ExecuteAddMember(context.Background(), MemberInput{
		Name: "Tomasz Lis", Role: "Członek",
		Description: "Druk 3D.", Category: "członek",
		Photo: &photo,
	}, deps)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	err = ExecuteUpdateMember(context.Background(), MemberInput{
		ID: created.ID, Name: "Tomasz Lis", Role: "Skarbnik",
		Description: "Druk 3D.", Category: "zarząd",
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteUpdateMember: %v", err)
	}

	got, _ := store.GetByID(context.Background(), created.ID)
	if got.Photo != created.Photo {
		t.Errorf("photo = %q, want kept %q", got.Photo, created.Photo)
	}
	if got.Role != "Skarbnik" {
		t.Errorf("role = %q, want rewritten", got.Role)
	}
	if len(files.removed) != 0 {
		t.Errorf("no file may be removed, got %v", files.removed)
	}
}

func TestDeleteMemberRemovesPhotoFile(t *testing.T) {
	store := newMockMemberStore()
	files := &mockFiles{}
	deps := MemberDeps{MemberStore: store, Files: files, Now: tick()}

	photo := fileUpload("zdjecie.jpeg")
	created, err := ExecuteAddMember(context.Background(), MemberInput{
		Name: "Katarzyna Wiśniewska", Role: "Skarbnik",
		Description: "Mechanika precyzyjna.", Category: "zarząd",
		Photo: &photo,
	}, deps)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := ExecuteDeleteMember(context.Background(), created.ID, deps); err != nil {
		t.Fatalf("ExecuteDeleteMember: %v", err)
	}
	if len(store.items) != 0 {
		t.Error("row was not removed")
	}
	if len(files.removed) != 1 || files.removed[0] != created.Photo {
		t.Errorf("removed = %v, want the photo file", files.removed)
	}
}

func TestDeleteMemberUnknownIDReturnsNotFound(t *testing.T) {
	deps := MemberDeps{MemberStore: newMockMemberStore(), Files: &mockFiles{}, Now: tick()}
	if err := ExecuteDeleteMember(context.Background(), 7, deps); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
