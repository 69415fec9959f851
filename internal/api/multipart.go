package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nvu/mailterm/internal/model"
)

// postDraft encodes a Draft as a multipart form and posts it. Recipient
// lists and stored-attachment metadata travel as JSON-stringified array
// fields (parallel arrays for names/types/urls); local attachment files are
// streamed as file parts. The whole upload is one request.
func (c *Client) postDraft(
	ctx context.Context,
	path string,
	draft Draft,
) (*model.Mail, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := writeJSONField(w, "to", draft.To); err != nil {
		return nil, err
	}
	if err := writeJSONField(w, "cc", draft.Cc); err != nil {
		return nil, err
	}
	if err := writeJSONField(w, "bcc", draft.Bcc); err != nil {
		return nil, err
	}
	if err := w.WriteField("subject", draft.Subject); err != nil {
		return nil, fmt.Errorf("writing subject field: %w", err)
	}
	if err := w.WriteField("body", draft.Body); err != nil {
		return nil, fmt.Errorf("writing body field: %w", err)
	}
	if draft.HTML != "" {
		if err := w.WriteField("htmlBody", draft.HTML); err != nil {
			return nil, fmt.Errorf("writing htmlBody field: %w", err)
		}
	}
	if draft.ScheduledSendAt != nil {
		ts := draft.ScheduledSendAt.UTC().Format(time.RFC3339)
		if err := w.WriteField("scheduledSendAt", ts); err != nil {
			return nil, fmt.Errorf("writing scheduledSendAt field: %w", err)
		}
	}

	if len(draft.Existing) > 0 {
		names := make([]string, len(draft.Existing))
		types := make([]string, len(draft.Existing))
		urls := make([]string, len(draft.Existing))
		sizes := make([]string, len(draft.Existing))
		for i, a := range draft.Existing {
			names[i] = a.Filename
			types[i] = a.MimeType
			urls[i] = a.URL
			sizes[i] = strconv.FormatInt(a.Size, 10)
		}
		if err := writeJSONField(w, "attachmentNames", names); err != nil {
			return nil, err
		}
		if err := writeJSONField(w, "attachmentTypes", types); err != nil {
			return nil, err
		}
		if err := writeJSONField(w, "attachmentUrls", urls); err != nil {
			return nil, err
		}
		if err := writeJSONField(w, "attachmentSizes", sizes); err != nil {
			return nil, err
		}
	}

	for _, p := range draft.AttachmentPaths {
		if err := writeFilePart(w, p); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	var mail model.Mail
	err := c.send(ctx, http.MethodPost, path, &buf, w.FormDataContentType(), &mail)
	if err != nil {
		return nil, err
	}
	return &mail, nil
}

// writeJSONField writes a form field holding the JSON encoding of v.
func writeJSONField(w *multipart.Writer, name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s field: %w", name, err)
	}
	if err := w.WriteField(name, string(data)); err != nil {
		return fmt.Errorf("writing %s field: %w", name, err)
	}
	return nil
}

// writeFilePart streams one local file into the multipart body under the
// "attachments" field.
func writeFilePart(w *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening attachment %s: %w", path, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile("attachments", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("creating attachment part for %s: %w", path, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copying attachment %s: %w", path, err)
	}
	return nil
}
