// ABOUTME: Friends list screen with search, month filter, and pagination
// ABOUTME: Add/edit/delete are emitted as messages for the root model to execute

package friends

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/krills/birthday-tracker/cli/internal/api"
	"github.com/krills/birthday-tracker/cli/internal/dateutil"
	"github.com/krills/birthday-tracker/cli/internal/tui/icons"
	"github.com/krills/birthday-tracker/cli/internal/tui/styles"
	"github.com/krills/birthday-tracker/cli/internal/tui/widgets"
)

const pageSize = 12

// AddMsg requests the add-friend form
type AddMsg struct{}

// EditMsg requests the edit form for a friend
type EditMsg struct {
	Friend api.Friend
}

// DeleteMsg requests deletion of a friend after confirmation
type DeleteMsg struct {
	ID string
}

// RefreshMsg requests a reload of the friend list
type RefreshMsg struct{}

// BackMsg requests navigation back to the dashboard
type BackMsg struct{}

// Model is the friends list screen
type Model struct {
	friends  []api.Friend
	filtered []api.Friend

	search    textinput.Model
	searching bool
	month     time.Month // 0 means no month filter

	cursor     int // index into filtered
	confirming bool

	notice string
	errMsg string
	width  int
	height int
}

// New creates the friends list screen
func New(friends []api.Friend, width, height int) *Model {
	search := textinput.New()
	search.Placeholder = "Search friends..."
	search.CharLimit = 64
	search.Width = 32

	m := &Model{
		friends: friends,
		search:  search,
		width:   width,
		height:  height,
	}
	m.applyFilters()
	return m
}

// SetSize updates the terminal dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetFriends replaces the list while preserving filters and cursor position
func (m *Model) SetFriends(friends []api.Friend) {
	m.friends = friends
	m.applyFilters()
}

// SetNotice shows a one-shot success banner
func (m *Model) SetNotice(notice string) {
	m.notice = notice
	m.errMsg = ""
}

// SetError shows an error banner
func (m *Model) SetError(errMsg string) {
	m.errMsg = errMsg
	m.notice = ""
}

// Selected returns the friend under the cursor, or nil when the list is empty
func (m *Model) Selected() *api.Friend {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	f := m.filtered[m.cursor]
	return &f
}

func (m *Model) applyFilters() {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))

	m.filtered = m.filtered[:0]
	for _, f := range m.friends {
		if query != "" && !strings.Contains(strings.ToLower(f.Name()), query) {
			continue
		}
		if m.month != 0 {
			month, ok := dateutil.BirthMonth(f.BirthDate)
			if !ok || month != m.month {
				continue
			}
		}
		m.filtered = append(m.filtered, f)
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) pageCount() int {
	if len(m.filtered) == 0 {
		return 1
	}
	return (len(m.filtered) + pageSize - 1) / pageSize
}

func (m *Model) page() int {
	return m.cursor / pageSize
}

// Update handles screen input
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.searching {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.confirming {
		switch key.String() {
		case "y", "Y":
			m.confirming = false
			if sel := m.Selected(); sel != nil {
				id := sel.ID
				return m, func() tea.Msg { return DeleteMsg{ID: id} }
			}
		default:
			m.confirming = false
		}
		return m, nil
	}

	if m.searching {
		switch key.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.applyFilters()
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.cursor = 0
			m.applyFilters()
			return m, cmd
		}
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "left", "h":
		m.cursor -= pageSize
		if m.cursor < 0 {
			m.cursor = 0
		}
	case "right", "l":
		if m.cursor+pageSize < len(m.filtered) {
			m.cursor += pageSize
		} else if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		}
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "m":
		m.month = nextMonth(m.month)
		m.cursor = 0
		m.applyFilters()
	case "a":
		return m, func() tea.Msg { return AddMsg{} }
	case "e", "enter":
		if sel := m.Selected(); sel != nil {
			f := *sel
			return m, func() tea.Msg { return EditMsg{Friend: f} }
		}
	case "d":
		if m.Selected() != nil {
			m.confirming = true
		}
	case "r":
		return m, func() tea.Msg { return RefreshMsg{} }
	case "b", "esc":
		return m, func() tea.Msg { return BackMsg{} }
	}

	return m, nil
}

// nextMonth cycles the filter: all -> Jan -> ... -> Dec -> all
func nextMonth(month time.Month) time.Month {
	if month == time.December {
		return 0
	}
	return month + 1
}

// View renders the friends list screen
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Friends (%d)", icons.Friends, len(m.friends))))
	sb.WriteString("\n\n")

	if m.notice != "" {
		sb.WriteString(styles.Notice.Render(fmt.Sprintf("%s %s", icons.CheckOK, m.notice)))
		sb.WriteString("\n\n")
	}
	if m.errMsg != "" {
		sb.WriteString(styles.ErrorText.Render(fmt.Sprintf("%s %s", icons.Critical, m.errMsg)))
		sb.WriteString("\n\n")
	}

	if m.searching {
		sb.WriteString(fmt.Sprintf("%s %s\n", icons.Search, m.search.View()))
	} else if m.search.Value() != "" {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s filter: %q", icons.Search, m.search.Value())))
		sb.WriteString("\n")
	}
	if m.month != 0 {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s month: %s", icons.Calendar, m.month)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(m.filtered) == 0 {
		sb.WriteString(styles.Help.Render("  No friends match. Press a to add one."))
		sb.WriteString("\n")
	} else {
		start := m.page() * pageSize
		end := start + pageSize
		if end > len(m.filtered) {
			end = len(m.filtered)
		}
		for i := start; i < end; i++ {
			sb.WriteString(m.renderRow(i))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render(fmt.Sprintf("  Page %d/%d • %d shown", m.page()+1, m.pageCount(), len(m.filtered))))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.confirming {
		sel := m.Selected()
		name := ""
		if sel != nil {
			name = sel.Name()
		}
		sb.WriteString(styles.StatusWarning.Render(fmt.Sprintf("%s Delete %s? (y/n)", icons.Warning, name)))
	} else {
		sb.WriteString(styles.Help.Render("↑/↓ move • ←/→ page • / search • m month • a add • e edit • d delete • r refresh • b back"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func (m *Model) renderRow(i int) string {
	f := m.filtered[i]

	name := f.Name()
	if len(name) > 26 {
		name = name[:23] + "..."
	}
	line := fmt.Sprintf("%-26s %-12s %s",
		name,
		dateutil.FormatBirthday(f.BirthDate),
		widgets.CountdownBadge(f.DaysUntilBirthday, f.IsBirthdayToday))

	if i == m.cursor {
		return styles.SelectedRow.Render("> " + line)
	}
	return styles.NormalRow.Render("  " + line)
}
