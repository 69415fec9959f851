package accounts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nvu/mailterm/internal/keys"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/theme"
)

// SwitchMsg asks the parent to make the selected account active.
type SwitchMsg struct {
	Email string
}

// AddMsg asks the parent to open the login screen for a new account.
type AddMsg struct{}

// SignOutMsg asks the parent to sign the selected account out.
type SignOutMsg struct {
	Email string
}

// BackMsg signals the parent to return to the mail list.
type BackMsg struct{}

// Model is the account switcher view.
type Model struct {
	sessions []model.Session
	active   string
	cursor   int
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates an account switcher model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetSessions replaces the listed accounts and marks the active one.
func (m *Model) SetSessions(sessions []model.Session, active string) {
	m.sessions = sessions
	m.active = active
	if m.cursor >= len(sessions) {
		m.cursor = 0
	}
}

// Update handles messages for the account switcher.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.sessions)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Select):
		if s := m.selected(); s != nil {
			email := s.Email
			return m, func() tea.Msg { return SwitchMsg{Email: email} }
		}
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	case keyMsg.String() == "n":
		return m, func() tea.Msg { return AddMsg{} }
	case keyMsg.String() == "x":
		if s := m.selected(); s != nil {
			email := s.Email
			return m, func() tea.Msg { return SignOutMsg{Email: email} }
		}
	}

	return m, nil
}

func (m Model) selected() *model.Session {
	if m.cursor < 0 || m.cursor >= len(m.sessions) {
		return nil
	}
	return &m.sessions[m.cursor]
}

// View renders the account switcher.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var lines []string
	lines = append(lines, titleStyle.Render("Accounts"))

	if len(m.sessions) == 0 {
		lines = append(lines, theme.HelpStyle.Render("No signed-in accounts. Press n to add one."))
	}

	for i, s := range m.sessions {
		marker := "  "
		if s.Email == m.active {
			marker = theme.StarStyle.Render("● ")
		}

		name := s.User.FullName()
		if name == "" {
			name = s.Email
		}

		line := fmt.Sprintf(
			"%s%s  %s  %s",
			marker,
			name,
			theme.HelpStyle.Render(s.Email),
			theme.HelpStyle.Render("signed in "+humanize.Time(s.LoginAt)),
		)
		if s.User.IsAdmin() {
			line += "  " + theme.RoleStyle(model.RoleAdmin).Render("admin")
		}

		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	lines = append(lines, theme.HelpStyle.Render(
		"enter switch · n add account · x sign out · esc back"))

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(strings.Join(lines, "\n"))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
