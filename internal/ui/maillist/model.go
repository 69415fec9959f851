package maillist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvu/mailterm/internal/keys"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/theme"
)

// SelectedMailMsg is sent when the user opens a mail from the list.
type SelectedMailMsg struct {
	MailID string
}

// SearchMsg is sent when the user submits a search query.
type SearchMsg struct {
	Query string
}

// PageRequestMsg is sent when the user pages forward or backward.
type PageRequestMsg struct {
	Page int
}

// Model is the mail list view component.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	marked      map[string]bool
	searchMode  bool
	searchInput textinput.Model
	title       string
	page        int
	hasMore     bool
	total       int
	width       int
	height      int
}

// New creates a new mail list model.
func New(k *keys.KeyMap, width, height int) Model {
	marked := make(map[string]bool)
	delegate := ItemDelegate{marked: marked}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Inbox"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search mail..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		marked:      marked,
		searchInput: si,
		page:        1,
		width:       width,
		height:      height,
	}
}

// SetMails replaces the visible page. Marks for mails that are no
// longer listed are dropped.
func (m *Model) SetMails(mails []model.Mail, page, total int, hasMore bool) {
	items := make([]list.Item, len(mails))
	listed := make(map[string]bool, len(mails))
	for i, mail := range mails {
		items[i] = MailItem{Mail: mail}
		listed[mail.ID] = true
	}
	for id := range m.marked {
		if !listed[id] {
			delete(m.marked, id)
		}
	}
	m.list.SetItems(items)
	m.page = page
	m.total = total
	m.hasMore = hasMore
}

// SetTitle sets the list header, normally the active view's name.
func (m *Model) SetTitle(title string) {
	m.title = title
	m.list.Title = title
}

// SelectedID returns the id of the focused mail, or "".
func (m Model) SelectedID() string {
	item, ok := m.list.SelectedItem().(MailItem)
	if !ok {
		return ""
	}
	return item.Mail.ID
}

// MarkedIDs returns the ids marked for a bulk action. When nothing is
// marked it falls back to the focused mail, so single-target and bulk
// actions share one code path.
func (m Model) MarkedIDs() []string {
	if len(m.marked) == 0 {
		if id := m.SelectedID(); id != "" {
			return []string{id}
		}
		return nil
	}
	ids := make([]string, 0, len(m.marked))
	for _, item := range m.list.Items() {
		mi, ok := item.(MailItem)
		if !ok {
			continue
		}
		if m.marked[mi.Mail.ID] {
			ids = append(ids, mi.Mail.ID)
		}
	}
	return ids
}

// Searching reports whether the search input currently owns the
// keyboard.
func (m Model) Searching() bool {
	return m.searchMode
}

// ClearMarks drops all bulk-action marks.
func (m *Model) ClearMarks() {
	for id := range m.marked {
		delete(m.marked, id)
	}
}

// Update handles messages for the mail list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(keyMsg)
		}
		return m.handleNormalKeys(keyMsg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		return m, func() tea.Msg {
			return SearchMsg{Query: query}
		}

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		return m, func() tea.Msg {
			return SearchMsg{Query: ""}
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		id := m.SelectedID()
		if id == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedMailMsg{MailID: id}
		}

	case key.Matches(msg, m.keys.Mark):
		id := m.SelectedID()
		if id == "" {
			return m, nil
		}
		if m.marked[id] {
			delete(m.marked, id)
		} else {
			m.marked[id] = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.NextPage):
		if !m.hasMore {
			return m, nil
		}
		page := m.page + 1
		return m, func() tea.Msg {
			return PageRequestMsg{Page: page}
		}

	case key.Matches(msg, m.keys.PrevPage):
		if m.page <= 1 {
			return m, nil
		}
		page := m.page - 1
		return m, func() tea.Msg {
			return PageRequestMsg{Page: page}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the mail list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), m.renderPageLine())
}

// renderPageLine shows the pagination position under the list.
func (m Model) renderPageLine() string {
	pos := fmt.Sprintf("page %d · %d mails", m.page, m.total)
	if m.hasMore {
		pos += " · ] for more"
	}
	return theme.HelpStyle.Render(pos)
}

// renderEmptyState shows guidance text when the view has no mails.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	return style.Render("No mail here.\n\nPress c to compose, r to refresh.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
