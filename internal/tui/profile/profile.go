// ABOUTME: Profile screen with view, edit, change-password, and delete-account modes
// ABOUTME: Mutations are emitted as messages; the root model calls the backend

package profile

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

// SaveProfileMsg requests a profile update
type SaveProfileMsg struct {
	Req api.ProfileRequest
}

// ChangePasswordMsg requests a password change
type ChangePasswordMsg struct {
	Req api.ChangePasswordRequest
}

// DeleteAccountMsg requests permanent account deletion
type DeleteAccountMsg struct{}

// BackMsg requests navigation back to the dashboard
type BackMsg struct{}

type mode int

const (
	modeView mode = iota
	modeEdit
	modePassword
	modeConfirmDelete
)

// Model is the profile screen
type Model struct {
	user *api.User
	mode mode
	form *huh.Form

	// profile edit fields
	username  string
	email     string
	firstName string
	lastName  string
	birthDate string

	// password change fields
	oldPassword        string
	newPassword        string
	confirmNewPassword string

	notice     string
	errMsg     string
	fields     map[string]string
	submitting bool
	width      int
}

// New creates the profile screen
func New(user *api.User, width int) *Model {
	return &Model{user: user, width: width}
}

// SetSize updates the terminal width
func (m *Model) SetSize(width int) {
	m.width = width
}

// SetUser replaces the displayed user after a successful save
func (m *Model) SetUser(user *api.User, notice string) {
	m.user = user
	m.mode = modeView
	m.form = nil
	m.notice = notice
	m.errMsg = ""
	m.fields = nil
	m.submitting = false
}

// Done resets the screen to view mode with a notice (e.g. password changed)
func (m *Model) Done(notice string) {
	m.mode = modeView
	m.form = nil
	m.notice = notice
	m.errMsg = ""
	m.fields = nil
	m.submitting = false
	m.oldPassword = ""
	m.newPassword = ""
	m.confirmNewPassword = ""
}

// SetError displays a failed mutation and re-arms the current form
func (m *Model) SetError(err *api.APIError) {
	m.errMsg = err.Message
	m.fields = err.Fields
	m.notice = ""
	m.submitting = false
	switch m.mode {
	case modeEdit:
		m.form = m.buildEditForm()
	case modePassword:
		m.oldPassword = ""
		m.form = m.buildPasswordForm()
	}
}

func (m *Model) enterEdit() tea.Cmd {
	m.mode = modeEdit
	m.notice = ""
	m.errMsg = ""
	m.fields = nil
	if m.user != nil {
		m.username = m.user.Username
		m.email = m.user.Email
		m.firstName = m.user.FirstName
		m.lastName = m.user.LastName
		m.birthDate = dateutil.FormatForInput(m.user.BirthDate)
	}
	m.form = m.buildEditForm()
	return m.form.Init()
}

func (m *Model) enterPassword() tea.Cmd {
	m.mode = modePassword
	m.notice = ""
	m.errMsg = ""
	m.fields = nil
	m.oldPassword = ""
	m.newPassword = ""
	m.confirmNewPassword = ""
	m.form = m.buildPasswordForm()
	return m.form.Init()
}

func (m *Model) buildEditForm() *huh.Form {
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
		).Title("Edit Profile"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

func (m *Model) buildPasswordForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&m.oldPassword).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("Current password is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&m.newPassword).
				Validate(func(s string) error {
					if errs := validate.Password(s); len(errs) > 0 {
						return fmt.Errorf("%s", errs[0])
					}
					return nil
				}),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&m.confirmNewPassword).
				Validate(func(s string) error {
					if s != m.newPassword {
						return fmt.Errorf("New passwords do not match")
					}
					return nil
				}),
		).Title("Change Password"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Update handles screen input
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch m.mode {
	case modeView:
		return m.updateView(msg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m *Model) updateView(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "e":
		return m, m.enterEdit()
	case "c":
		return m, m.enterPassword()
	case "D":
		m.mode = modeConfirmDelete
		m.notice = ""
		m.errMsg = ""
	case "b", "esc":
		return m, func() tea.Msg { return BackMsg{} }
	}
	return m, nil
}

func (m *Model) updateConfirmDelete(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.submitting = true
		return m, func() tea.Msg { return DeleteAccountMsg{} }
	default:
		m.mode = modeView
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.Msg) (*Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.mode = modeView
		m.form = nil
		m.errMsg = ""
		m.fields = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.mode {
		case modeEdit:
			m.submitting = true
			req := api.ProfileRequest{
				Username:  strings.TrimSpace(m.username),
				Email:     strings.TrimSpace(m.email),
				FirstName: strings.TrimSpace(m.firstName),
				LastName:  strings.TrimSpace(m.lastName),
				BirthDate: strings.TrimSpace(m.birthDate),
			}
			return m, func() tea.Msg { return SaveProfileMsg{Req: req} }
		case modePassword:
			if fields := validate.PasswordChange(m.oldPassword, m.newPassword, m.confirmNewPassword); fields != nil {
				m.fields = fields
				m.errMsg = "Please fix the highlighted fields"
				m.form = m.buildPasswordForm()
				return m, m.form.Init()
			}
			m.submitting = true
			req := api.ChangePasswordRequest{
				OldPassword:        m.oldPassword,
				NewPassword:        m.newPassword,
				ConfirmNewPassword: m.confirmNewPassword,
			}
			return m, func() tea.Msg { return ChangePasswordMsg{Req: req} }
		}
	}

	return m, cmd
}

// View renders the profile screen
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Profile", icons.Person)))
	sb.WriteString("\n\n")

	if m.notice != "" {
		sb.WriteString(styles.Notice.Render(fmt.Sprintf("%s %s", icons.CheckOK, m.notice)))
		sb.WriteString("\n\n")
	}
	if m.errMsg != "" {
		sb.WriteString(styles.ErrorText.Render(fmt.Sprintf("%s %s", icons.Critical, m.errMsg)))
		sb.WriteString("\n")
		names := make([]string, 0, len(m.fields))
		for name := range m.fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(styles.FieldError.Render(fmt.Sprintf("  %s: %s", name, m.fields[name])))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	switch m.mode {
	case modeView:
		sb.WriteString(m.renderDetails())
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("e edit • c change password • D delete account • b back"))
	case modeConfirmDelete:
		sb.WriteString(m.renderDetails())
		sb.WriteString("\n")
		sb.WriteString(styles.StatusError.Render(fmt.Sprintf(
			"%s Permanently delete your account and all friends? (y/n)", icons.Warning)))
	default:
		if m.submitting {
			sb.WriteString(styles.Subtitle.Render("Saving..."))
		} else {
			sb.WriteString(m.form.View())
			if m.mode == modePassword && m.newPassword != "" {
				strength := validate.PasswordStrength(m.newPassword)
				sb.WriteString("\n")
				sb.WriteString(fmt.Sprintf(" %s %s\n",
					widgets.StrengthBar(float64(strength.Percentage), 24),
					styles.Subtitle.Render(strength.Label)))
			}
		}
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("enter next • esc cancel • ctrl+c quit"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func (m *Model) renderDetails() string {
	if m.user == nil {
		return styles.Help.Render("No profile loaded.")
	}

	var rows []string
	add := func(label, value string) {
		if value == "" {
			value = "-"
		}
		rows = append(rows, fmt.Sprintf("%s %s",
			styles.KeyStyle.Render(fmt.Sprintf("%-12s", label)),
			styles.ValueStyle.Render(value)))
	}

	add("Username", m.user.Username)
	add("Email", m.user.Email)
	add("Name", strings.TrimSpace(m.user.FirstName+" "+m.user.LastName))
	if m.user.BirthDate != "" {
		birthday := fmt.Sprintf("%s (%d years)",
			dateutil.FormatDate(m.user.BirthDate),
			dateutil.Age(m.user.BirthDate))
		add("Birthday", birthday)
	} else {
		add("Birthday", "")
	}

	return styles.Panel.Render(strings.Join(rows, "\n"))
}
