package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvu/mailterm/internal/theme"
)

// SubmitMsg is dispatched when the user submits credentials.
type SubmitMsg struct {
	Email    string
	Password string
}

// TwoFactorSubmitMsg is dispatched when the user submits a 2FA code.
// TempToken is the short-lived token issued by the first login step.
type TwoFactorSubmitMsg struct {
	TempToken string
	Code      string
}

// RegisterRequestMsg asks the parent to open the registration wizard.
type RegisterRequestMsg struct{}

// CancelMsg is dispatched when the user abandons the login form.
type CancelMsg struct{}

type formBindings struct {
	email    string
	password string
	code     string
}

// Model is the login screen, a two-step form when 2FA is enabled.
type Model struct {
	form      *huh.Form
	fb        *formBindings
	tempToken string
	errMsg    string
	width     int
	height    int
}

// New creates a new login model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the credentials form, optionally pre-filling the
// email of the last known account.
func (m *Model) Start(email string) tea.Cmd {
	*m.fb = formBindings{email: email}
	m.tempToken = ""
	m.errMsg = ""
	m.form = m.buildCredentialsForm()
	return m.form.Init()
}

// StartTwoFactor switches to the verification-code step.
func (m *Model) StartTwoFactor(tempToken string) tea.Cmd {
	m.fb.code = ""
	m.tempToken = tempToken
	m.errMsg = ""
	m.form = m.buildCodeForm()
	return m.form.Init()
}

// SetError shows a failure message and restarts the credentials step.
func (m *Model) SetError(msg string) tea.Cmd {
	m.errMsg = msg
	if m.tempToken != "" {
		m.form = m.buildCodeForm()
	} else {
		m.fb.password = ""
		m.form = m.buildCredentialsForm()
	}
	return m.form.Init()
}

// Update handles messages for the login screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+r" {
		return m, func() tea.Msg { return RegisterRequestMsg{} }
	}

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

// View renders the login screen.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Sign in"
	if m.tempToken != "" {
		titleText = "Two-factor verification"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var parts []string
	parts = append(parts, titleStyle.Render(titleText))
	if m.errMsg != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errMsg))
	}
	parts = append(parts, m.form.View())
	parts = append(parts, theme.HelpStyle.Render("ctrl+r to create an account"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(parts, "\n"))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildCredentialsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
		),
	).WithWidth(m.formWidth())
}

func (m *Model) buildCodeForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Verification code").
				Placeholder("6-digit code").
				Value(&m.fb.code).
				Validate(validateCode),
		),
	).WithWidth(m.formWidth())
}

func (m Model) handleSubmit() tea.Cmd {
	if m.tempToken != "" {
		tempToken, code := m.tempToken, m.fb.code
		return func() tea.Msg {
			return TwoFactorSubmitMsg{TempToken: tempToken, Code: code}
		}
	}

	email, password := m.fb.email, m.fb.password
	return func() tea.Msg {
		return SubmitMsg{Email: email, Password: password}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 72 {
		w = 72
	}
	return w
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 || !strings.Contains(s[at+1:], ".") {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func validateCode(s string) error {
	s = strings.TrimSpace(s)
	if len(s) != 6 {
		return fmt.Errorf("code must be 6 digits")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("code must be 6 digits")
		}
	}
	return nil
}
