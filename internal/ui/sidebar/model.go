package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/state"
	"github.com/nvu/mailterm/internal/theme"
)

// Model renders the folder/category rail with unread counters.
type Model struct {
	stats  model.Stats
	active state.View
	width  int
	height int
}

// New creates a sidebar model.
func New(width, height int) Model {
	return Model{
		active: state.FolderView(model.FolderInbox),
		width:  width,
		height: height,
	}
}

// SetStats replaces the displayed counters.
func (m *Model) SetStats(stats model.Stats) {
	m.stats = stats
}

// SetActive highlights the view the mail list is showing.
func (m *Model) SetActive(v state.View) {
	m.active = v
}

// SetSize updates the sidebar dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the sidebar.
func (m Model) View() string {
	var lines []string

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorGray).
		MarginTop(1)

	lines = append(lines, sectionStyle.Render("Folders"))
	for _, f := range model.Folders {
		switch f {
		case model.FolderStarredView:
			lines = append(lines, m.renderRow(
				state.StarredView(), "starred", m.stats.Starred.Unread))
		case model.FolderScheduled:
			lines = append(lines, m.renderRow(
				state.ScheduledView(), "scheduled",
				m.stats.FolderUnread(model.FolderScheduled)))
		default:
			lines = append(lines, m.renderRow(
				state.FolderView(f), string(f), m.stats.FolderUnread(f)))
		}
	}

	lines = append(lines, sectionStyle.Render("Categories"))
	for _, c := range model.Categories {
		lines = append(lines, m.renderRow(
			state.CategoryView(c),
			string(c),
			m.stats.CategoryUnread(c),
		))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(theme.ColorBorder).
		Render(strings.Join(lines, "\n"))
}

// renderRow draws one navigable entry with its unread count.
func (m Model) renderRow(v state.View, label string, unread int) string {
	count := ""
	if unread > 0 {
		count = fmt.Sprintf(" %d", unread)
	}

	line := label + count
	if v.Equal(m.active) {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}
