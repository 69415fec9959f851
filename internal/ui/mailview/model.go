package mailview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nvu/mailterm/internal/keys"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/sanitize"
	"github.com/nvu/mailterm/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// MailLoadedMsg carries the fully loaded mail content.
type MailLoadedMsg struct {
	Mail *model.Mail
}

// ActionMsg signals the parent to execute an action on the open mail.
type ActionMsg struct {
	Action string
	MailID string
}

// Model is the mail reading pane.
type Model struct {
	mail     *model.Mail
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
	loading  bool
}

// New creates a new mail reading model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the reading pane.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the reading pane.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MailLoadedMsg:
		m.SetMail(msg.Mail)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, m.keys.Reply):
			return m, m.action("reply")

		case key.Matches(msg, m.keys.Star):
			return m, m.action("star")

		case key.Matches(msg, m.keys.Important):
			return m, m.action("important")

		case key.Matches(msg, m.keys.ToggleRead):
			return m, m.action("unread")

		case key.Matches(msg, m.keys.Trash):
			return m, m.action("trash")

		case key.Matches(msg, m.keys.Snooze):
			return m, m.action("snooze")

		case key.Matches(msg, m.keys.Export):
			return m, m.action("export")
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) action(name string) tea.Cmd {
	if m.mail == nil {
		return nil
	}
	id := m.mail.ID
	return func() tea.Msg {
		return ActionMsg{Action: name, MailID: id}
	}
}

// View renders the reading pane.
func (m Model) View() string {
	if m.loading {
		loadingStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return loadingStyle.Render("Loading mail...")
	}

	if m.mail == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No mail selected")
	}

	return m.viewport.View()
}

// renderContent builds the full mail content string for the viewport.
func (m Model) renderContent() string {
	if m.mail == nil {
		return ""
	}

	mail := m.mail
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	subject := mail.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	sections = append(sections, titleStyle.Render(subject))

	// Badges line: folder + categories + flags
	badges := []string{theme.FolderStyle(mail.Folder).Render(string(mail.Folder))}
	for _, c := range mail.Categories {
		badges = append(badges, theme.CategoryStyle(c).Render(string(c)))
	}
	if mail.IsStarred {
		badges = append(badges, theme.StarStyle.Render("★ starred"))
	}
	if mail.IsImportant {
		badges = append(badges, theme.ImportantStyle.Render("! important"))
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(badges, "  ")))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	sections = append(sections, fmt.Sprintf(
		"%s  %s",
		metaStyle.Render("From:"),
		valStyle.Render(mail.From.String()),
	))
	if len(mail.To) > 0 {
		sections = append(sections, fmt.Sprintf(
			"%s    %s",
			metaStyle.Render("To:"),
			valStyle.Render(joinAddresses(mail.To)),
		))
	}
	if len(mail.Cc) > 0 {
		sections = append(sections, fmt.Sprintf(
			"%s    %s",
			metaStyle.Render("Cc:"),
			valStyle.Render(joinAddresses(mail.Cc)),
		))
	}
	if !mail.ReceivedAt.IsZero() {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Date:"),
			valStyle.Render(mail.ReceivedAt.Format("2006-01-02 15:04")),
		))
	}
	if mail.ScheduledSendAt != nil {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Scheduled:"),
			valStyle.Render(mail.ScheduledSendAt.Format("2006-01-02 15:04")),
		))
	}
	if mail.SnoozedUntil != nil {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Snoozed until:"),
			valStyle.Render(mail.SnoozedUntil.Format("2006-01-02 15:04")),
		))
	}
	if len(mail.Labels) > 0 {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Labels:"),
			valStyle.Render(strings.Join(mail.Labels, ", ")),
		))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")

	body := sanitize.Body(mail.Body, mail.HTMLBody)
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("Empty message")
	}
	sections = append(sections, body)

	if len(mail.Attachments) > 0 {
		sections = append(sections, "")
		sections = append(sections, separator)
		sections = append(sections, "")

		attachHeaderStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite)
		sections = append(sections, attachHeaderStyle.Render(
			fmt.Sprintf("Attachments (%d)", len(mail.Attachments)),
		))

		for _, a := range mail.Attachments {
			sections = append(sections, fmt.Sprintf(
				"  @ %s  %s  %s",
				valStyle.Render(a.Filename),
				metaStyle.Render(a.MimeType),
				metaStyle.Render(humanize.Bytes(uint64(a.Size))),
			))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetMail updates the mail being displayed and re-renders the content.
func (m *Model) SetMail(mail *model.Mail) {
	m.mail = mail
	m.loading = false
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Mail returns the currently open mail, or nil.
func (m Model) Mail() *model.Mail {
	return m.mail
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetSize updates the reading pane dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}

func joinAddresses(addrs []model.Address) string {
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
