package state

import (
	"testing"

	"github.com/nvu/mailterm/internal/model"
)

func TestFolderViewMembership(t *testing.T) {
	v := FolderView(model.FolderInbox)

	m := model.Mail{ID: "m1", Folder: model.FolderInbox}
	if !v.Contains(&m) {
		t.Fatalf("inbox mail should belong to inbox view")
	}

	m.Folder = model.FolderArchive
	if v.Contains(&m) {
		t.Fatalf("archived mail should not belong to inbox view")
	}
}

func TestCategoryViewMembership(t *testing.T) {
	v := CategoryView(model.CategorySocial)

	m := model.Mail{
		ID:         "m1",
		Folder:     model.FolderInbox,
		Categories: []model.Category{model.CategorySocial, model.CategoryUpdates},
	}
	if !v.Contains(&m) {
		t.Fatalf("mail with social category should belong to social view")
	}

	m.Categories = []model.Category{model.CategoryUpdates}
	if v.Contains(&m) {
		t.Fatalf("mail without social category should not belong to social view")
	}

	// Category membership is independent of folder.
	m.Categories = []model.Category{model.CategorySocial}
	m.Folder = model.FolderTrash
	if !v.Contains(&m) {
		t.Fatalf("category membership must not depend on folder")
	}
}

func TestStarredViewIgnoresFolder(t *testing.T) {
	v := StarredView()

	m := model.Mail{ID: "m1", Folder: model.FolderSent, IsStarred: true}
	if !v.Contains(&m) {
		t.Fatalf("starred sent mail should belong to starred view")
	}

	// A folder move never changes starred membership.
	m.Folder = model.FolderArchive
	if !v.Contains(&m) {
		t.Fatalf("folder change must not affect starred membership")
	}

	m.IsStarred = false
	if v.Contains(&m) {
		t.Fatalf("unstarred mail should not belong to starred view")
	}
}

func TestScheduledViewMembership(t *testing.T) {
	v := ScheduledView()

	m := model.Mail{ID: "m1", Folder: model.FolderScheduled}
	if !v.Contains(&m) {
		t.Fatalf("scheduled mail should belong to scheduled view")
	}

	// Cancelling a schedule moves the mail to drafts.
	m.Folder = model.FolderDrafts
	if v.Contains(&m) {
		t.Fatalf("drafted mail should not belong to scheduled view")
	}
}

func TestViewEqual(t *testing.T) {
	if !FolderView(model.FolderInbox).Equal(FolderView(model.FolderInbox)) {
		t.Fatalf("identical folder views should be equal")
	}
	if FolderView(model.FolderInbox).Equal(FolderView(model.FolderSent)) {
		t.Fatalf("different folders should not be equal")
	}
	if StarredView().Equal(ScheduledView()) {
		t.Fatalf("starred and scheduled views should not be equal")
	}
	if CategoryView(model.CategorySocial).Equal(CategoryView(model.CategoryForums)) {
		t.Fatalf("different categories should not be equal")
	}
}
