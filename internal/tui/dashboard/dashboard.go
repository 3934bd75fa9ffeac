// ABOUTME: Dashboard screen with birthday stats and the upcoming list
// ABOUTME: Pure presentation; data is loaded by the root model and pushed in

package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/krills/birthday-tracker/cli/internal/api"
	"github.com/krills/birthday-tracker/cli/internal/dateutil"
	"github.com/krills/birthday-tracker/cli/internal/tui/icons"
	"github.com/krills/birthday-tracker/cli/internal/tui/styles"
	"github.com/krills/birthday-tracker/cli/internal/tui/widgets"
)

const maxUpcomingRows = 8

// Stats summarizes the friend list for the stat cards
type Stats struct {
	Total     int
	ThisMonth int
	Soon      int
}

// Model is the dashboard screen
type Model struct {
	user     *api.User
	upcoming []api.Friend
	all      []api.Friend
	loaded   bool
	width    int
	height   int
}

// New creates the dashboard screen
func New(user *api.User, width, height int) *Model {
	return &Model{user: user, width: width, height: height}
}

// SetSize updates the terminal dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetData replaces the friend lists after a load or refresh
func (m *Model) SetData(upcoming, all []api.Friend) {
	m.upcoming = upcoming
	m.all = all
	m.loaded = true
}

// Loaded reports whether data has arrived
func (m *Model) Loaded() bool {
	return m.loaded
}

// computeStats derives the stat-card numbers from the friend lists
func computeStats(all, upcoming []api.Friend, now time.Time) Stats {
	s := Stats{Total: len(all)}
	for _, f := range all {
		if month, ok := dateutil.BirthMonth(f.BirthDate); ok && month == now.Month() {
			s.ThisMonth++
		}
	}
	for _, f := range upcoming {
		if f.IsBirthdayToday || f.DaysUntilBirthday <= 7 {
			s.Soon++
		}
	}
	return s
}

// View renders the dashboard screen
func (m *Model) View() string {
	var sb strings.Builder

	name := "there"
	if m.user != nil && m.user.FirstName != "" {
		name = m.user.FirstName
	} else if m.user != nil {
		name = m.user.Username
	}
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Welcome back, %s!", icons.Party, name)))
	sb.WriteString("\n\n")

	if !m.loaded {
		sb.WriteString(styles.Subtitle.Render("Loading your birthdays..."))
		return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
	}

	stats := computeStats(m.all, m.upcoming, time.Now())
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		renderStatCard(icons.Friends.String(), "Friends", fmt.Sprintf("%d", stats.Total), styles.Primary),
		renderStatCard(icons.Calendar.String(), "This month", fmt.Sprintf("%d", stats.ThisMonth), styles.Secondary),
		renderStatCard(icons.Cake.String(), "Next 7 days", fmt.Sprintf("%d", stats.Soon), styles.Success),
	)
	sb.WriteString(cards)
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s Upcoming Birthdays", icons.Gift)))
	sb.WriteString("\n")
	if len(m.upcoming) == 0 {
		sb.WriteString(styles.Help.Render("  No upcoming birthdays. Add some friends!"))
		sb.WriteString("\n")
	}
	rows := m.upcoming
	if len(rows) > maxUpcomingRows {
		rows = rows[:maxUpcomingRows]
	}
	for _, f := range rows {
		sb.WriteString(renderUpcomingRow(f))
		sb.WriteString("\n")
	}
	if extra := len(m.upcoming) - maxUpcomingRows; extra > 0 {
		sb.WriteString(styles.Help.Render(fmt.Sprintf("  ...and %d more", extra)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("f friends • p profile • r refresh • q quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func renderStatCard(icon, label, value string, color lipgloss.Color) string {
	content := fmt.Sprintf("%s %s\n%s",
		icon,
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(value),
		styles.Help.Render(label))
	return styles.Panel.Width(16).Render(content)
}

func renderUpcomingRow(f api.Friend) string {
	name := f.Name()
	if len(name) > 24 {
		name = name[:21] + "..."
	}
	date := dateutil.FormatBirthday(f.BirthDate)
	return fmt.Sprintf("  %-24s %-12s %s %s",
		styles.ValueStyle.Render(name),
		styles.Help.Render(date),
		widgets.CountdownBar(f.DaysUntilBirthday, 12),
		widgets.CountdownBadge(f.DaysUntilBirthday, f.IsBirthdayToday))
}
