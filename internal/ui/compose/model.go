package compose

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvu/mailterm/internal/api"
	"github.com/nvu/mailterm/internal/model"
	"github.com/nvu/mailterm/internal/theme"
)

// Action is what the user chose to do with the composed mail.
type Action string

const (
	ActionSend     Action = "send"
	ActionDraft    Action = "draft"
	ActionSchedule Action = "schedule"
)

// SubmitMsg is dispatched when the compose form is completed.
type SubmitMsg struct {
	Draft  api.Draft
	Action Action

	// ReplyTo is the id of the mail being replied to, empty for new mail.
	ReplyTo string
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	to          string
	cc          string
	bcc         string
	subject     string
	body        string
	attachments string
	action      string
	scheduleAt  string
}

// Model is the Bubble Tea model for the compose form.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	replyTo string
	width   int
	height  int
}

// New creates a new compose form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{action: string(ActionSend)},
		width:  width,
		height: height,
	}
}

// StartNew initializes the form for a fresh mail.
func (m *Model) StartNew() tea.Cmd {
	*m.fb = formBindings{action: string(ActionSend)}
	m.replyTo = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartReply initializes the form as a reply to an existing mail.
func (m *Model) StartReply(orig *model.Mail) tea.Cmd {
	*m.fb = formBindings{
		to:      orig.From.Email,
		subject: replySubject(orig.Subject),
		action:  string(ActionSend),
	}
	m.replyTo = orig.ID
	m.form = m.buildForm()
	return m.form.Init()
}

// StartDraft initializes the form from a stored draft.
func (m *Model) StartDraft(draft *model.Mail) tea.Cmd {
	*m.fb = formBindings{
		to:      joinEmails(draft.To),
		cc:      joinEmails(draft.Cc),
		bcc:     joinEmails(draft.Bcc),
		subject: draft.Subject,
		body:    draft.Body,
		action:  string(ActionSend),
	}
	m.replyTo = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the compose form.
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

// View renders the compose form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Mail"
	if m.replyTo != "" {
		titleText = "Reply"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("To").
			Placeholder("alice@example.com, Bob <bob@example.com>").
			Value(&m.fb.to).
			Validate(validateRecipients),
		huh.NewInput().
			Title("Cc").
			Placeholder("optional").
			Value(&m.fb.cc).
			Validate(validateOptionalAddresses),
		huh.NewInput().
			Title("Bcc").
			Placeholder("optional").
			Value(&m.fb.bcc).
			Validate(validateOptionalAddresses),
		huh.NewInput().
			Title("Subject").
			Value(&m.fb.subject),
		huh.NewText().
			Title("Body").
			Value(&m.fb.body),
		huh.NewInput().
			Title("Attachments").
			Placeholder("local file paths, comma separated (optional)").
			Value(&m.fb.attachments).
			Validate(validateAttachmentPaths),
		huh.NewSelect[string]().
			Title("Action").
			Options(
				huh.NewOption("Send now", string(ActionSend)),
				huh.NewOption("Save as draft", string(ActionDraft)),
				huh.NewOption("Schedule", string(ActionSchedule)),
			).
			Value(&m.fb.action),
		huh.NewInput().
			Title("Send at").
			Placeholder("YYYY-MM-DD HH:MM (only for schedule)").
			Value(&m.fb.scheduleAt).
			Validate(m.validateScheduleAt),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	draft := api.Draft{
		To:      parseAddresses(m.fb.to),
		Cc:      parseAddresses(m.fb.cc),
		Bcc:     parseAddresses(m.fb.bcc),
		Subject: m.fb.subject,
		Body:    m.fb.body,
	}

	for _, p := range splitList(m.fb.attachments) {
		draft.AttachmentPaths = append(draft.AttachmentPaths, p)
	}

	action := Action(m.fb.action)
	if action == ActionSchedule {
		if at, err := parseScheduleTime(m.fb.scheduleAt); err == nil {
			draft.ScheduledSendAt = &at
		}
	}

	replyTo := m.replyTo
	return func() tea.Msg {
		return SubmitMsg{Draft: draft, Action: action, ReplyTo: replyTo}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// validateScheduleAt requires a parseable future time when the chosen
// action is schedule; otherwise the field is ignored.
func (m *Model) validateScheduleAt(s string) error {
	if Action(m.fb.action) != ActionSchedule {
		return nil
	}
	at, err := parseScheduleTime(s)
	if err != nil {
		return err
	}
	if !at.After(time.Now()) {
		return fmt.Errorf("send time must be in the future")
	}
	return nil
}

func parseScheduleTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("send time is required for scheduled mail")
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time, use YYYY-MM-DD HH:MM")
	}
	return at, nil
}

func validateRecipients(s string) error {
	addrs := parseAddresses(s)
	if len(addrs) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	return validateOptionalAddresses(s)
}

func validateOptionalAddresses(s string) error {
	for _, part := range splitList(s) {
		addr := parseAddress(part)
		if !looksLikeEmail(addr.Email) {
			return fmt.Errorf("invalid address: %s", part)
		}
	}
	return nil
}

func validateAttachmentPaths(s string) error {
	for _, p := range splitList(s) {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("cannot read %s", p)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", p)
		}
	}
	return nil
}

// parseAddresses splits a comma-separated recipient list. Entries may be
// bare addresses or "Display Name <addr>" forms.
func parseAddresses(s string) []model.Address {
	var out []model.Address
	for _, part := range splitList(s) {
		out = append(out, parseAddress(part))
	}
	return out
}

func parseAddress(s string) model.Address {
	s = strings.TrimSpace(s)
	open := strings.LastIndex(s, "<")
	end := strings.LastIndex(s, ">")
	if open >= 0 && end > open {
		return model.Address{
			Name:  strings.TrimSpace(s[:open]),
			Email: strings.TrimSpace(s[open+1 : end]),
		}
	}
	return model.Address{Email: s}
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(s, " \t")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinEmails(addrs []model.Address) string {
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		if a.Name != "" {
			parts[i] = fmt.Sprintf("%s <%s>", a.Name, a.Email)
		} else {
			parts[i] = a.Email
		}
	}
	return strings.Join(parts, ", ")
}

func replySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}
