package register

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvu/mailterm/internal/api"
	"github.com/nvu/mailterm/internal/theme"
)

// SubmitMsg is dispatched when the wizard is completed. Email
// availability and premium code validity are still checked against the
// server before the account is created.
type SubmitMsg struct {
	Request api.RegisterRequest
}

// CancelMsg is dispatched when the user abandons the wizard.
type CancelMsg struct{}

const policyText = `Terms of service (summary)

- Your mailbox is for lawful personal correspondence.
- Accounts inactive for over two years may be removed.
- Admins may suspend accounts that send spam or abuse.
- Premium features follow the duration of the redeemed code.`

type formBindings struct {
	name        string
	surname     string
	birthDate   string
	gender      string
	email       string
	premiumCode string
	password    string
	confirm     string
	accepted    bool
}

// Model is the multi-step registration wizard.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	errMsg string
	width  int
	height int
}

// New creates a new registration wizard model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start resets and initializes the wizard.
func (m *Model) Start() tea.Cmd {
	*m.fb = formBindings{}
	m.errMsg = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError shows a server-side failure (email taken, bad premium code)
// and restarts the wizard with the entered values preserved.
func (m *Model) SetError(msg string) tea.Cmd {
	m.errMsg = msg
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the wizard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the wizard.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var parts []string
	parts = append(parts, titleStyle.Render("Create account"))
	if m.errMsg != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errMsg))
	}
	parts = append(parts, m.form.View())

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(parts, "\n"))
}

// SetSize updates the wizard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&m.fb.name).
				Validate(validateRequired("First name")),
			huh.NewInput().
				Title("Last name").
				Value(&m.fb.surname).
				Validate(validateRequired("Last name")),
			huh.NewInput().
				Title("Birth date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.birthDate).
				Validate(validateBirthDate),
			huh.NewSelect[string]().
				Title("Gender").
				Options(
					huh.NewOption("Prefer not to say", ""),
					huh.NewOption("Female", "female"),
					huh.NewOption("Male", "male"),
					huh.NewOption("Other", "other"),
				).
				Value(&m.fb.gender),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Premium code").
				Placeholder("optional, 5 characters").
				Value(&m.fb.premiumCode).
				Validate(validatePremiumCode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validatePassword),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.confirm).
				Validate(m.validateConfirm),
		),
		huh.NewGroup(
			huh.NewNote().
				Title("Terms of service").
				Description(policyText),
			huh.NewConfirm().
				Title("Accept the terms?").
				Affirmative("I accept").
				Negative("Cancel").
				Value(&m.fb.accepted).
				Validate(validateAccepted),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) validateConfirm(s string) error {
	if s != m.fb.password {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

func validateAccepted(accepted bool) error {
	if !accepted {
		return fmt.Errorf("you must accept the terms to register")
	}
	return nil
}

func (m Model) handleSubmit() tea.Cmd {
	req := api.RegisterRequest{
		Name:        strings.TrimSpace(m.fb.name),
		Surname:     strings.TrimSpace(m.fb.surname),
		Email:       strings.TrimSpace(m.fb.email),
		Password:    m.fb.password,
		Gender:      m.fb.gender,
		PremiumCode: strings.ToUpper(strings.TrimSpace(m.fb.premiumCode)),
	}
	if bd, err := parseBirthDate(m.fb.birthDate); err == nil {
		req.BirthDate = &bd
	}

	return func() tea.Msg {
		return SubmitMsg{Request: req}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 12 {
		h = 12
	}
	return h
}
