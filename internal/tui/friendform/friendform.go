// ABOUTME: Add/edit friend form screen shared by both flows
// ABOUTME: Emits CompletedMsg with the request payload; the root model performs the call

package friendform

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
)

// CompletedMsg is sent when the form is submitted.
// ID is empty for a new friend and set when editing.
type CompletedMsg struct {
	ID  string
	Req api.FriendRequest
}

// CancelledMsg is sent when the user backs out of the form
type CancelledMsg struct{}

// Model is the friend form screen
type Model struct {
	id         string
	firstName  string
	lastName   string
	birthDate  string
	form       *huh.Form
	errMsg     string
	fields     map[string]string
	submitting bool
	width      int
}

// New creates an empty form for adding a friend
func New(width int) *Model {
	m := &Model{width: width}
	m.form = m.buildForm()
	return m
}

// NewEdit creates a form pre-filled from an existing friend
func NewEdit(friend api.Friend, width int) *Model {
	m := &Model{
		id:        friend.ID,
		firstName: friend.FirstName,
		lastName:  friend.LastName,
		birthDate: dateutil.FormatForInput(friend.BirthDate),
		width:     width,
	}
	m.form = m.buildForm()
	return m
}

func (m *Model) buildForm() *huh.Form {
	title := "Add Friend"
	if m.id != "" {
		title = "Edit Friend"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&m.firstName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("First name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Last name").
				Value(&m.lastName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("Last name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Birth date").
				Placeholder("YYYY-MM-DD").
				Value(&m.birthDate).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("Birth date is required")
					}
					if _, err := dateutil.Parse(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("Use the YYYY-MM-DD format")
					}
					return nil
				}),
		).Title(title),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Init starts the form
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Editing reports whether the form targets an existing friend
func (m *Model) Editing() bool {
	return m.id != ""
}

// SetError displays a failed save attempt and re-arms the form with
// the entered values preserved.
func (m *Model) SetError(err *api.APIError) {
	m.errMsg = err.Message
	m.fields = err.Fields
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
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.submitting = true
		m.errMsg = ""
		m.fields = nil
		msg := CompletedMsg{
			ID: m.id,
			Req: api.FriendRequest{
				FirstName: strings.TrimSpace(m.firstName),
				LastName:  strings.TrimSpace(m.lastName),
				BirthDate: strings.TrimSpace(m.birthDate),
			},
		}
		return m, func() tea.Msg { return msg }
	}

	return m, cmd
}

// View renders the friend form screen
func (m *Model) View() string {
	var sb strings.Builder

	icon := icons.Add
	heading := "Add Friend"
	if m.id != "" {
		icon = icons.Edit
		heading = "Edit Friend"
	}
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s", icon, heading)))
	sb.WriteString("\n\n")

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

	if m.submitting {
		sb.WriteString(styles.Subtitle.Render("Saving..."))
	} else {
		sb.WriteString(m.form.View())
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("enter next • esc cancel • ctrl+c quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
