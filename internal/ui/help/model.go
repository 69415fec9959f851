package help

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvu/mailterm/internal/keys"
	"github.com/nvu/mailterm/internal/theme"
)

// sectionTitles label the keymap's FullHelp groups, in order.
var sectionTitles = []string{
	"Navigation",
	"List & search",
	"Mail actions",
	"Move & clean up",
	"Mailboxes & accounts",
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   keys,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the keybindings grouped by what they do.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorGray).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(theme.ColorWhite).
		Width(8)

	parts := []string{titleStyle.Render("Keyboard Shortcuts")}
	for i, group := range m.keys.FullHelp() {
		if i < len(sectionTitles) {
			parts = append(parts, sectionStyle.Render(sectionTitles[i]))
		}
		var lines []string
		for _, b := range group {
			h := b.Help()
			lines = append(lines, keyStyle.Render(h.Key)+" "+h.Desc)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	parts = append(parts, theme.HelpStyle.Render("esc to close"))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
