package app

import (
	"testing"

	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/state"
)

func TestNextFolderViewCyclesInOrder(t *testing.T) {
	v := state.FolderView(model.FolderInbox)

	v = nextFolderView(v)
	if v.Folder != model.FolderSent {
		t.Fatalf("after inbox got %s, want sent", v.Folder)
	}

	// Cycle all the way around.
	for i := 0; i < len(realFolders)-1; i++ {
		v = nextFolderView(v)
	}
	if v.Folder != model.FolderInbox {
		t.Errorf("full cycle ended on %s, want inbox", v.Folder)
	}
}

func TestNextFolderViewFromNonFolder(t *testing.T) {
	v := nextFolderView(state.StarredView())
	if v.Kind != state.ViewFolder || v.Folder != model.FolderInbox {
		t.Errorf("got %+v, want inbox folder view", v)
	}
}

func TestNextCategoryViewCycles(t *testing.T) {
	v := nextCategoryView(state.FolderView(model.FolderInbox))
	if v.Category != model.Categories[0] {
		t.Fatalf("got %s, want %s", v.Category, model.Categories[0])
	}

	last := state.CategoryView(model.Categories[len(model.Categories)-1])
	if got := nextCategoryView(last); got.Category != model.Categories[0] {
		t.Errorf("after last category got %s, want wrap to %s",
			got.Category, model.Categories[0])
	}
}

func TestViewKey(t *testing.T) {
	cases := []struct {
		view state.View
		want string
	}{
		{state.FolderView(model.FolderInbox), "folder:inbox"},
		{state.CategoryView(model.CategorySocial), "category:social"},
		{state.StarredView(), "starred"},
		{state.ScheduledView(), "scheduled"},
	}
	for _, tc := range cases {
		if got := viewKey(tc.view); got != tc.want {
			t.Errorf("viewKey(%+v) = %q, want %q", tc.view, got, tc.want)
		}
	}
}

func TestViewTitleCapitalizes(t *testing.T) {
	if got := viewTitle(state.FolderView(model.FolderInbox)); got != "Inbox" {
		t.Errorf("got %q, want Inbox", got)
	}
	if got := viewTitle(state.StarredView()); got != "Starred" {
		t.Errorf("got %q, want Starred", got)
	}
}

func TestCommandArg(t *testing.T) {
	if arg, ok := commandArg("category social", "category"); !ok || arg != "social" {
		t.Errorf("got (%q, %v), want (social, true)", arg, ok)
	}
	if _, ok := commandArg("category", "category"); ok {
		t.Error("bare verb should not match")
	}
	if _, ok := commandArg("category   ", "category"); ok {
		t.Error("verb with blank argument should not match")
	}
	if _, ok := commandArg("label urgent", "category"); ok {
		t.Error("wrong verb should not match")
	}
}

func TestMessageOr(t *testing.T) {
	if got := messageOr("server says no", "fallback"); got != "server says no" {
		t.Errorf("got %q", got)
	}
	if got := messageOr("  ", "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
}
