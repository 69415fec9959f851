// Package eml writes mails to disk in RFC 5322 format so they can be
// opened in other mail tools.
package eml

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"

	"github.com/nvu/mailterm/internal/model"
)

// Export writes a mail as an RFC 5322 message. Only the message bodies
// are included; attachment content lives on the server and is not
// downloaded here.
func Export(m *model.Mail, w io.Writer) error {
	var h mail.Header
	h.SetDate(m.ReceivedAt)
	h.SetSubject(m.Subject)
	h.SetAddressList("From", []*mail.Address{toAddress(m.From)})
	if len(m.To) > 0 {
		h.SetAddressList("To", toAddresses(m.To))
	}
	if len(m.Cc) > 0 {
		h.SetAddressList("Cc", toAddresses(m.Cc))
	}
	id := m.ID
	if id == "" {
		id = uuid.NewString()
	}
	h.Set("Message-ID", fmt.Sprintf("<%s@mailterm>", id))

	mw, err := mail.CreateWriter(w, h)
	if err != nil {
		return fmt.Errorf("creating message writer: %w", err)
	}

	iw, err := mw.CreateInline()
	if err != nil {
		return fmt.Errorf("creating inline writer: %w", err)
	}

	if m.Body != "" || m.HTMLBody == "" {
		var th mail.InlineHeader
		th.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
		part, err := iw.CreatePart(th)
		if err != nil {
			return fmt.Errorf("creating text part: %w", err)
		}
		if _, err := io.WriteString(part, m.Body); err != nil {
			return fmt.Errorf("writing text part: %w", err)
		}
		part.Close()
	}

	if m.HTMLBody != "" {
		var hh mail.InlineHeader
		hh.SetContentType("text/html", map[string]string{"charset": "utf-8"})
		part, err := iw.CreatePart(hh)
		if err != nil {
			return fmt.Errorf("creating html part: %w", err)
		}
		if _, err := io.WriteString(part, m.HTMLBody); err != nil {
			return fmt.Errorf("writing html part: %w", err)
		}
		part.Close()
	}

	if err := iw.Close(); err != nil {
		return fmt.Errorf("closing inline writer: %w", err)
	}
	return mw.Close()
}

// ExportFile writes the mail to dir and returns the full path. The
// filename is derived from the subject, falling back to the mail ID.
func ExportFile(m *model.Mail, dir string) (string, error) {
	path := filepath.Join(dir, Filename(m))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := Export(m, f); err != nil {
		return "", err
	}
	return path, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Filename builds a filesystem-safe .eml name for a mail.
func Filename(m *model.Mail) string {
	base := strings.TrimSpace(m.Subject)
	if base == "" {
		base = m.ID
	}
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	if base == "" {
		base = m.ID
	}
	if len(base) > 80 {
		base = base[:80]
	}
	return base + ".eml"
}

func toAddress(a model.Address) *mail.Address {
	return &mail.Address{Name: a.Name, Address: a.Email}
}

func toAddresses(as []model.Address) []*mail.Address {
	out := make([]*mail.Address, len(as))
	for i, a := range as {
		out[i] = toAddress(a)
	}
	return out
}
