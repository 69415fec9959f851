package sidebar

import (
	"strings"
	"testing"

	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/state"
)

func TestViewShowsUnreadCounts(t *testing.T) {
	m := New(30, 40)
	m.SetStats(model.Stats{
		Folders: map[model.Folder]model.FolderCount{
			model.FolderInbox: {Unread: 7, Total: 12},
		},
		Categories: map[model.Category]model.FolderCount{
			model.CategorySocial: {Unread: 2, Total: 5},
		},
		Starred: model.FolderCount{Unread: 3, Total: 9},
	})

	out := m.View()

	for _, want := range []string{"inbox 7", "social 2", "starred 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("sidebar missing %q:\n%s", want, out)
		}
	}
}

func TestViewOmitsZeroCounts(t *testing.T) {
	m := New(30, 40)
	m.SetStats(model.Stats{})

	out := m.View()
	if !strings.Contains(out, "trash") {
		t.Fatalf("sidebar missing trash row:\n%s", out)
	}
	if strings.Contains(out, "trash 0") {
		t.Errorf("zero count should be hidden:\n%s", out)
	}
}

func TestSetActiveHighlightsRow(t *testing.T) {
	m := New(30, 40)
	m.SetActive(state.StarredView())
	if !m.active.Equal(state.StarredView()) {
		t.Errorf("active = %+v, want starred view", m.active)
	}
}
