// ABOUTME: Sign-in screen with a huh form for username and password
// ABOUTME: Emits SubmittedMsg on completion; navigation is left to the root model

package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/krills/birthday-tracker/cli/internal/api"
	"github.com/krills/birthday-tracker/cli/internal/tui/icons"
	"github.com/krills/birthday-tracker/cli/internal/tui/styles"
)

// SubmittedMsg is sent when the user submits the sign-in form
type SubmittedMsg struct {
	Username string
	Password string
}

// SwitchToRegisterMsg is sent when the user wants the registration screen
type SwitchToRegisterMsg struct{}

// Model is the sign-in screen
type Model struct {
	form       *huh.Form
	username   string
	password   string
	errMsg     string
	notice     string
	submitting bool
	width      int
}

// New creates the sign-in screen
func New(width int) *Model {
	m := &Model{width: width}
	m.form = m.buildForm()
	return m
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&m.username).
				Validate(requiredField("Username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password).
				Validate(requiredField("Password")),
		).Title("Sign In"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

func requiredField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// Init starts the form
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// SetNotice displays an informational banner (e.g. after registration)
func (m *Model) SetNotice(notice string) {
	m.notice = notice
}

// SetError displays a failed sign-in attempt and re-arms the form,
// keeping the username so only the password has to be retyped.
func (m *Model) SetError(err *api.APIError) {
	m.errMsg = err.Message
	m.password = ""
	m.submitting = false
	m.form = m.buildForm()
}

// SetSize updates the terminal width
func (m *Model) SetSize(width int) {
	m.width = width
}

// Update handles screen input
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+r" {
		return m, func() tea.Msg { return SwitchToRegisterMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.submitting = true
		m.errMsg = ""
		username := strings.TrimSpace(m.username)
		password := m.password
		return m, func() tea.Msg {
			return SubmittedMsg{Username: username, Password: password}
		}
	}

	return m, cmd
}

// View renders the sign-in screen
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Sign In", icons.Lock)))
	sb.WriteString("\n\n")

	if m.notice != "" {
		sb.WriteString(styles.Notice.Render(fmt.Sprintf("%s %s", icons.CheckOK, m.notice)))
		sb.WriteString("\n\n")
	}
	if m.errMsg != "" {
		sb.WriteString(styles.ErrorText.Render(fmt.Sprintf("%s %s", icons.Critical, m.errMsg)))
		sb.WriteString("\n\n")
	}

	if m.submitting {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
	} else {
		sb.WriteString(m.form.View())
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("enter submit • ctrl+r create account • ctrl+c quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
