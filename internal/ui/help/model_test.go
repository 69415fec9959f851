package help

import (
	"strings"
	"testing"

	"github.com/nvu/mailterm/internal/keys"
)

func TestViewGroupsBindings(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 60)
	out := m.View()

	for _, want := range sectionTitles {
		if !strings.Contains(out, want) {
			t.Errorf("help missing section %q", want)
		}
	}
	for _, want := range []string{"compose", "toggle star", "snooze", "accounts"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing binding %q", want)
		}
	}
}
