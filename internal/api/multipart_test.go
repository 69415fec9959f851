package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nvu/mailterm/internal/model"
)

func TestSendMailEncodesMultipartDraft(t *testing.T) {
	dir := t.TempDir()
	attachment := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(attachment, []byte("quarterly numbers"), 0o600); err != nil {
		t.Fatalf("writing attachment fixture: %v", err)
	}

	var gotTo []model.Address
	var gotSubject, gotBody string
	var gotFileName, gotFileContent string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart form: %v", err)
		}

		json.Unmarshal([]byte(r.FormValue("to")), &gotTo)
		gotSubject = r.FormValue("subject")
		gotBody = r.FormValue("body")

		if files := r.MultipartForm.File["attachments"]; len(files) == 1 {
			gotFileName = files[0].Filename
			f, _ := files[0].Open()
			data := make([]byte, files[0].Size)
			f.Read(data)
			f.Close()
			gotFileContent = string(data)
		}

		json.NewEncoder(w).Encode(model.Mail{ID: "sent-1", Folder: model.FolderSent})
	}))
	defer srv.Close()

	mail, err := c.SendMail(context.Background(), Draft{
		To:              []model.Address{{Name: "Bob", Email: "bob@example.com"}},
		Subject:         "Q3 report",
		Body:            "see attached",
		AttachmentPaths: []string{attachment},
	})
	if err != nil {
		t.Fatalf("sending mail: %v", err)
	}

	if mail.ID != "sent-1" {
		t.Errorf("mail id = %q, want sent-1", mail.ID)
	}
	if len(gotTo) != 1 || gotTo[0].Email != "bob@example.com" {
		t.Errorf("to = %+v, want bob@example.com", gotTo)
	}
	if gotSubject != "Q3 report" || gotBody != "see attached" {
		t.Errorf("subject/body = %q/%q", gotSubject, gotBody)
	}
	if gotFileName != "report.txt" || gotFileContent != "quarterly numbers" {
		t.Errorf("attachment = %q/%q", gotFileName, gotFileContent)
	}
}

func TestScheduleMailRequiresSendTime(t *testing.T) {
	c := NewClient("http://localhost:0", time.Second)

	if _, err := c.ScheduleMail(context.Background(), Draft{Subject: "later"}); err == nil {
		t.Fatal("expected error for missing send time")
	}
}

func TestScheduleMailSendsRFC3339Timestamp(t *testing.T) {
	var gotTS string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		gotTS = r.FormValue("scheduledSendAt")
		json.NewEncoder(w).Encode(model.Mail{ID: "sched-1"})
	}))
	defer srv.Close()

	at := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	_, err := c.ScheduleMail(context.Background(), Draft{
		To:              []model.Address{{Email: "bob@example.com"}},
		Subject:         "later",
		ScheduledSendAt: &at,
	})
	if err != nil {
		t.Fatalf("scheduling mail: %v", err)
	}
	if gotTS != "2026-09-01T08:00:00Z" {
		t.Errorf("scheduledSendAt = %q", gotTS)
	}
}

func TestDraftResendsStoredAttachmentMetadata(t *testing.T) {
	var names, urls []string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		json.Unmarshal([]byte(r.FormValue("attachmentNames")), &names)
		json.Unmarshal([]byte(r.FormValue("attachmentUrls")), &urls)
		json.NewEncoder(w).Encode(model.Mail{ID: "draft-1"})
	}))
	defer srv.Close()

	_, err := c.SaveDraft(context.Background(), Draft{
		Subject: "wip",
		Existing: []model.Attachment{
			{Filename: "old.pdf", MimeType: "application/pdf", URL: "/files/old.pdf", Size: 1024},
		},
	})
	if err != nil {
		t.Fatalf("saving draft: %v", err)
	}

	if len(names) != 1 || names[0] != "old.pdf" {
		t.Errorf("attachmentNames = %v", names)
	}
	if len(urls) != 1 || urls[0] != "/files/old.pdf" {
		t.Errorf("attachmentUrls = %v", urls)
	}
}
