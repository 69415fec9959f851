package maillist

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateKeepsShortStrings(t *testing.T) {
	if got := truncate("Alice <alice@example.com>", 40); got != "Alice <alice@example.com>" {
		t.Errorf("truncate = %q, want input unchanged", got)
	}
}

func TestTruncateCutsOnRuneBoundaries(t *testing.T) {
	in := "Jürgen Müller <jürgen.müller@example.de>"
	got := truncate(in, 24)

	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncate = %q, want ellipsis suffix", got)
	}
	if n := utf8.RuneCountInString(got); n != 24 {
		t.Errorf("rune count = %d, want 24", n)
	}
}

func TestTruncateMultiByteOnly(t *testing.T) {
	in := strings.Repeat("日", 30)
	got := truncate(in, 24)

	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 24 {
		t.Errorf("rune count = %d, want 24", n)
	}
}
