// ABOUTME: Account registration screen with field validation and strength meter
// ABOUTME: Validates locally before submit; server field errors render below the form

package register

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/krills/birthday-tracker/cli/internal/api"
	"github.com/krills/birthday-tracker/cli/internal/dateutil"
	"github.com/krills/birthday-tracker/cli/internal/tui/icons"
	"github.com/krills/birthday-tracker/cli/internal/tui/styles"
	"github.com/krills/birthday-tracker/cli/internal/tui/widgets"
	"github.com/krills/birthday-tracker/cli/internal/validate"
)

// SubmittedMsg is sent when the registration form completes
type SubmittedMsg struct {
	Req api.RegisterRequest
}

// SwitchToLoginMsg is sent when the user wants back to the sign-in screen
type SwitchToLoginMsg struct{}

// Model is the registration screen
type Model struct {
	form       *huh.Form
	username   string
	email      string
	firstName  string
	lastName   string
	birthDate  string
	password   string
	confirm    string
	errMsg     string
	fields     map[string]string
	submitting bool
	width      int
}

// New creates the registration screen
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
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("Username is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Email").
				Value(&m.email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("Email is required")
					}
					if !validate.Email(strings.TrimSpace(s)) {
						return fmt.Errorf("Please enter a valid email address")
					}
					return nil
				}),
			huh.NewInput().
				Title("First name").
				Value(&m.firstName),
			huh.NewInput().
				Title("Last name").
				Value(&m.lastName),
			huh.NewInput().
				Title("Birth date").
				Placeholder("YYYY-MM-DD").
				Value(&m.birthDate).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := dateutil.Parse(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("Use the YYYY-MM-DD format")
					}
					return nil
				}),
		).Title("Create Account"),
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password).
				Validate(func(s string) error {
					if errs := validate.Password(s); len(errs) > 0 {
						return fmt.Errorf("%s", errs[0])
					}
					return nil
				}),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&m.confirm).
				Validate(func(s string) error {
					if s != m.password {
						return fmt.Errorf("Passwords do not match")
					}
					return nil
				}),
		).Title("Choose a Password"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Init starts the form
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// SetError displays a failed registration attempt and re-arms the form
// with everything but the password preserved.
func (m *Model) SetError(err *api.APIError) {
	m.errMsg = err.Message
	m.fields = err.Fields
	m.password = ""
	m.confirm = ""
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

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m, func() tea.Msg { return SwitchToLoginMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.submitting = true
		m.errMsg = ""
		m.fields = nil
		req := api.RegisterRequest{
			Username:  strings.TrimSpace(m.username),
			Email:     strings.TrimSpace(m.email),
			Password:  m.password,
			FirstName: strings.TrimSpace(m.firstName),
			LastName:  strings.TrimSpace(m.lastName),
			BirthDate: strings.TrimSpace(m.birthDate),
		}
		return m, func() tea.Msg { return SubmittedMsg{Req: req} }
	}

	return m, cmd
}

// View renders the registration screen
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Create Account", icons.Person)))
	sb.WriteString("\n\n")

	if m.errMsg != "" {
		sb.WriteString(styles.ErrorText.Render(fmt.Sprintf("%s %s", icons.Critical, m.errMsg)))
		sb.WriteString("\n")
		for _, name := range sortedFieldNames(m.fields) {
			sb.WriteString(styles.FieldError.Render(fmt.Sprintf("  %s: %s", name, m.fields[name])))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if m.submitting {
		sb.WriteString(styles.Subtitle.Render("Creating account..."))
	} else {
		sb.WriteString(m.form.View())
		if m.password != "" {
			strength := validate.PasswordStrength(m.password)
			sb.WriteString("\n")
			sb.WriteString(fmt.Sprintf(" %s %s\n",
				widgets.StrengthBar(float64(strength.Percentage), 24),
				styles.Subtitle.Render(strength.Label)))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("enter next • esc back to sign in • ctrl+c quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func sortedFieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
