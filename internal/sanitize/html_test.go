package sanitize

import (
	"strings"
	"testing"
)

func TestHTMLToTextStripsTags(t *testing.T) {
	got := HTMLToText(`<p>Hello <b>world</b></p><p>Second paragraph</p>`)
	want := "Hello world\nSecond paragraph"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHTMLToTextRemovesScripts(t *testing.T) {
	got := HTMLToText(`<script>alert("x")</script><style>p{color:red}</style>Visible`)
	if got != "Visible" {
		t.Errorf("got %q, want Visible", got)
	}
}

func TestHTMLToTextPreservesLineBreaks(t *testing.T) {
	got := HTMLToText("line one<br>line two<br/>line three")
	want := "line one\nline two\nline three"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHTMLToTextDecodesEntities(t *testing.T) {
	got := HTMLToText("Fish &amp; Chips &lt;deluxe&gt;")
	if got != "Fish & Chips <deluxe>" {
		t.Errorf("got %q", got)
	}
}

func TestHTMLToTextCollapsesBlankRuns(t *testing.T) {
	got := HTMLToText("<p>a</p><br><br><br><br><p>b</p>")
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank run survived: %q", got)
	}
}

func TestBodyPrefersHTMLPart(t *testing.T) {
	got := Body("plain version", "<p>rich version</p>")
	if got != "rich version" {
		t.Errorf("got %q, want rich version", got)
	}
}

func TestBodyFallsBackToPlain(t *testing.T) {
	got := Body("  plain version  ", "   ")
	if got != "plain version" {
		t.Errorf("got %q, want plain version", got)
	}
}
