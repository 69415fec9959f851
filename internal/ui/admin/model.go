package admin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvu/mailterm/internal/keys"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/theme"
)

// UsersLoadedMsg carries the user directory page.
type UsersLoadedMsg struct {
	Users []model.User
	Total int
}

// ToggleRoleMsg asks the parent to flip a user between admin and user.
type ToggleRoleMsg struct {
	UserID string
	Role   model.Role
}

// ToggleStatusMsg asks the parent to activate or deactivate a user.
type ToggleStatusMsg struct {
	UserID string
	Status model.Status
}

// DeleteUserMsg asks the parent to delete a user account.
type DeleteUserMsg struct {
	UserID string
}

// BackMsg signals the parent to return to the mail list.
type BackMsg struct{}

// Model is the admin user directory view.
type Model struct {
	users   []model.User
	total   int
	cursor  int
	confirm string
	keys    *keys.KeyMap
	width   int
	height  int
}

// New creates an admin view model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		width:  width,
		height: height,
	}
}

// Update handles messages for the admin view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UsersLoadedMsg:
		m.users = msg.Users
		m.total = msg.Total
		if m.cursor >= len(m.users) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Deleting a user is irreversible, so it needs a second keypress.
	if m.confirm != "" {
		userID := m.confirm
		m.confirm = ""
		if msg.String() == "y" {
			return m, func() tea.Msg { return DeleteUserMsg{UserID: userID} }
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.users)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	case msg.String() == "r":
		if u := m.selected(); u != nil {
			role := model.RoleAdmin
			if u.IsAdmin() {
				role = model.RoleUser
			}
			id := u.ID
			return m, func() tea.Msg { return ToggleRoleMsg{UserID: id, Role: role} }
		}
	case msg.String() == "t":
		if u := m.selected(); u != nil {
			status := model.StatusInactive
			if u.Status == model.StatusInactive {
				status = model.StatusActive
			}
			id := u.ID
			return m, func() tea.Msg { return ToggleStatusMsg{UserID: id, Status: status} }
		}
	case msg.String() == "x":
		if u := m.selected(); u != nil {
			m.confirm = u.ID
		}
	}
	return m, nil
}

func (m Model) selected() *model.User {
	if m.cursor < 0 || m.cursor >= len(m.users) {
		return nil
	}
	return &m.users[m.cursor]
}

// View renders the user directory.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var lines []string
	lines = append(lines, titleStyle.Render(
		fmt.Sprintf("Users (%d)", m.total)))

	if len(m.users) == 0 {
		lines = append(lines, theme.HelpStyle.Render("No users loaded."))
	}

	for i, u := range m.users {
		status := u.Status
		if status == "" {
			status = model.StatusActive
		}
		statusStr := string(status)
		if status == model.StatusInactive {
			statusStr = theme.ErrorStyle.Render(statusStr)
		}

		line := fmt.Sprintf(
			"%-28s %-24s %s %s",
			u.FullName(),
			u.Email,
			theme.RoleStyle(u.Role).Render(string(u.Role)),
			statusStr,
		)

		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	if m.confirm != "" {
		lines = append(lines, theme.ErrorStyle.Render(
			"Delete this user permanently? Press y to confirm."))
	} else {
		lines = append(lines, theme.HelpStyle.Render(
			"r toggle role · t toggle active · x delete · esc back"))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(strings.Join(lines, "\n"))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
