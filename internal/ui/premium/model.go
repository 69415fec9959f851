package premium

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvu/mailterm/internal/keys"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/theme"
)

// DomainsLoadedMsg carries the premium domain list.
type DomainsLoadedMsg struct {
	Domains []model.PremiumDomain
}

// CreateMsg asks the parent to create a premium domain.
type CreateMsg struct {
	Domain model.PremiumDomain
}

// UpdateMsg asks the parent to update an existing premium domain.
type UpdateMsg struct {
	Domain model.PremiumDomain
}

// ToggleMsg asks the parent to flip a domain's active flag.
type ToggleMsg struct {
	ID string
}

// DeleteMsg asks the parent to delete a premium domain.
type DeleteMsg struct {
	ID string
}

// BackMsg signals the parent to return to the mail list.
type BackMsg struct{}

type formBindings struct {
	name   string
	price  string
	months string
	active bool
}

// Model is the premium domain management view (admin only).
type Model struct {
	domains []model.PremiumDomain
	cursor  int
	confirm string

	form   *huh.Form
	fb     *formBindings
	editID string

	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a premium management model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		fb:     &formBindings{},
		keys:   k,
		width:  width,
		height: height,
	}
}

// Update handles messages for the premium view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DomainsLoadedMsg:
		m.domains = msg.Domains
		if m.cursor >= len(m.domains) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleListKeys(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		submitCmd := m.handleFormSubmit()
		m.form = nil
		return m, submitCmd
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m Model) handleListKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirm != "" {
		id := m.confirm
		m.confirm = ""
		if msg.String() == "y" {
			return m, func() tea.Msg { return DeleteMsg{ID: id} }
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.domains)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	case msg.String() == "n":
		m.editID = ""
		*m.fb = formBindings{months: "12", active: true}
		m.form = m.buildForm()
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Select):
		if d := m.selected(); d != nil {
			m.editID = d.ID
			*m.fb = formBindings{
				name:   d.Name,
				price:  fmt.Sprintf("%.2f", d.Price),
				months: fmt.Sprintf("%d", d.DurationMonths),
				active: d.Active,
			}
			m.form = m.buildForm()
			return m, m.form.Init()
		}
	case msg.String() == "t":
		if d := m.selected(); d != nil {
			id := d.ID
			return m, func() tea.Msg { return ToggleMsg{ID: id} }
		}
	case msg.String() == "x":
		if d := m.selected(); d != nil {
			m.confirm = d.ID
		}
	}
	return m, nil
}

func (m Model) selected() *model.PremiumDomain {
	if m.cursor < 0 || m.cursor >= len(m.domains) {
		return nil
	}
	return &m.domains[m.cursor]
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Premium plan name").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewInput().
				Title("Price").
				Placeholder("9.99").
				Value(&m.fb.price).
				Validate(validatePrice),
			huh.NewInput().
				Title("Duration (months)").
				Value(&m.fb.months).
				Validate(validateMonths),
			huh.NewConfirm().
				Title("Active").
				Value(&m.fb.active),
		),
	).WithWidth(minInt(m.width-8, 60))
}

func (m Model) handleFormSubmit() tea.Cmd {
	domain := model.PremiumDomain{
		ID:     m.editID,
		Name:   strings.TrimSpace(m.fb.name),
		Active: m.fb.active,
	}
	fmt.Sscanf(m.fb.price, "%f", &domain.Price)
	fmt.Sscanf(m.fb.months, "%d", &domain.DurationMonths)

	if m.editID != "" {
		return func() tea.Msg { return UpdateMsg{Domain: domain} }
	}
	return func() tea.Msg { return CreateMsg{Domain: domain} }
}

// View renders the premium management view.
func (m Model) View() string {
	if m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var lines []string
	lines = append(lines, titleStyle.Render("Premium plans"))

	if len(m.domains) == 0 {
		lines = append(lines, theme.HelpStyle.Render("No plans yet. Press n to create one."))
	}

	for i, d := range m.domains {
		state := theme.HelpStyle.Render("inactive")
		if d.Active {
			state = lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("active")
		}

		line := fmt.Sprintf(
			"%-24s %8.2f  %2d mo  %s  %s",
			d.Name, d.Price, d.DurationMonths,
			theme.StarStyle.Render(d.Code),
			state,
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
			"Delete this plan? Press y to confirm."))
	} else {
		lines = append(lines, theme.HelpStyle.Render(
			"n new · enter edit · t toggle · x delete · esc back"))
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

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validatePrice(s string) error {
	var f float64
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%f", &f); err != nil || f < 0 {
		return fmt.Errorf("enter a non-negative price")
	}
	return nil
}

func validateMonths(s string) error {
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &n); err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number of months")
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
