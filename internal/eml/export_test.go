package eml

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/nvu/mailterm/internal/model"
)

func sampleMail() *model.Mail {
	return &model.Mail{
		ID:         "abc-123",
		From:       model.Address{Name: "Ada Lovelace", Email: "ada@example.com"},
		To:         []model.Address{{Email: "bob@example.com"}},
		Subject:    "Weekly report",
		Body:       "All systems nominal.",
		HTMLBody:   "<p>All systems <b>nominal</b>.</p>",
		Folder:     model.FolderInbox,
		ReceivedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestExportContainsHeadersAndBodies(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(sampleMail(), &buf); err != nil {
		t.Fatalf("exporting mail: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Subject: Weekly report",
		"ada@example.com",
		"bob@example.com",
		"All systems nominal.",
		"text/html",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestExportFileWritesToDisk(t *testing.T) {
	dir := t.TempDir()

	path, err := ExportFile(sampleMail(), dir)
	if err != nil {
		t.Fatalf("exporting to file: %v", err)
	}
	if !strings.HasSuffix(path, "Weekly_report.eml") {
		t.Errorf("path = %q, want Weekly_report.eml suffix", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	if !strings.Contains(string(data), "Subject: Weekly report") {
		t.Error("exported file missing subject header")
	}
}

func TestFilenameSanitizesSubject(t *testing.T) {
	m := &model.Mail{ID: "id-1", Subject: `Re: invoice #42 / "urgent"?`}
	got := Filename(m)
	if strings.ContainsAny(got, `/\"#?`) {
		t.Errorf("filename %q contains unsafe characters", got)
	}
	if !strings.HasSuffix(got, ".eml") {
		t.Errorf("filename %q missing .eml extension", got)
	}
}

func TestFilenameFallsBackToID(t *testing.T) {
	m := &model.Mail{ID: "id-1", Subject: "   "}
	if got := Filename(m); got != "id-1.eml" {
		t.Errorf("filename = %q, want id-1.eml", got)
	}
}
