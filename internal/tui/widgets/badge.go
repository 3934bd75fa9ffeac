// ABOUTME: Status badge widgets for quick visual indication
// ABOUTME: Provides colored inline badges for birthday countdowns

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// BadgeLevel represents the visual weight of a badge
type BadgeLevel int

const (
	BadgeToday BadgeLevel = iota
	BadgeSoon
	BadgeUpcoming
	BadgeNeutral
)

// Badge colors
var (
	badgeTodayBg    = lipgloss.Color("#8B5CF6")
	badgeTodayFg    = lipgloss.Color("#FFFFFF")
	badgeSoonBg     = lipgloss.Color("#10B981")
	badgeSoonFg     = lipgloss.Color("#FFFFFF")
	badgeUpcomingBg = lipgloss.Color("#3B82F6")
	badgeUpcomingFg = lipgloss.Color("#FFFFFF")
	badgeNeutralBg  = lipgloss.Color("#6B7280")
	badgeNeutralFg  = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored inline badge
func Badge(text string, level BadgeLevel) string {
	var bg, fg lipgloss.Color
	switch level {
	case BadgeToday:
		bg, fg = badgeTodayBg, badgeTodayFg
	case BadgeSoon:
		bg, fg = badgeSoonBg, badgeSoonFg
	case BadgeUpcoming:
		bg, fg = badgeUpcomingBg, badgeUpcomingFg
	default:
		bg, fg = badgeNeutralBg, badgeNeutralFg
	}

	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true).
		Render(text)
}

// CountdownBadge renders the days-until-birthday label for a friend
func CountdownBadge(daysUntil int, isToday bool) string {
	switch {
	case isToday || daysUntil == 0:
		return Badge("Today!", BadgeToday)
	case daysUntil == 1:
		return Badge("Tomorrow", BadgeSoon)
	case daysUntil <= 7:
		return Badge(fmt.Sprintf("in %d days", daysUntil), BadgeSoon)
	case daysUntil <= 30:
		return Badge(fmt.Sprintf("in %d days", daysUntil), BadgeUpcoming)
	default:
		return Badge(fmt.Sprintf("in %d days", daysUntil), BadgeNeutral)
	}
}
