package maillist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/theme"
)

// MailItem wraps a model.Mail so it can be used in a bubbles/list.
type MailItem struct {
	Mail model.Mail
}

// FilterValue returns the string used for fuzzy filtering.
func (i MailItem) FilterValue() string {
	return i.Mail.Subject + " " + i.Mail.From.String()
}

// Title returns the mail subject for the list.
func (i MailItem) Title() string { return i.Mail.Subject }

// Description returns a short summary line for the list.
func (i MailItem) Description() string {
	parts := []string{
		i.Mail.From.String(),
		humanize.Time(i.Mail.ReceivedAt),
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering mail rows.
type ItemDelegate struct {
	// marked is shared by reference with the maillist Model so bulk
	// selection changes are visible without rebuilding the delegate.
	marked map[string]bool
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single mail row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	mi, ok := item.(MailItem)
	if !ok {
		return
	}

	mail := mi.Mail
	isSelected := index == m.Index()

	readMark := " "
	if !mail.IsRead {
		readMark = "●"
	}

	markBox := "[ ]"
	if d.marked[mail.ID] {
		markBox = theme.MarkedItemStyle.Render("[x]")
	}

	star := " "
	if mail.IsStarred {
		star = theme.StarStyle.Render("★")
	}

	important := " "
	if mail.IsImportant {
		important = theme.ImportantStyle.Render("!")
	}

	attach := " "
	if len(mail.Attachments) > 0 {
		attach = "@"
	}

	from := truncate(mail.From.String(), 24)

	subject := mail.Subject
	if subject == "" {
		subject = "(no subject)"
	}

	timeStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(humanize.Time(mail.ReceivedAt))

	line := fmt.Sprintf(
		"%s %s %s%s%s %-24s %s  %s",
		readMark, markBox, star, important, attach, from, subject, timeStr,
	)

	if !mail.IsRead {
		line = theme.UnreadItemStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// truncate shortens s to at most max runes, never cutting inside a
// multi-byte sequence, and marks the cut with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
