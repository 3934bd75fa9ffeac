// ABOUTME: Progress bar widgets for strength meters and countdowns
// ABOUTME: Renders block-character bars with severity-based coloring

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/krills/birthday-tracker/cli/internal/tui/styles"
)

// bar renders a filled/empty block bar of the given width
func bar(percent float64, width int) string {
	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	var sb strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			sb.WriteString("█")
		} else {
			sb.WriteString("░")
		}
	}
	return sb.String()
}

// StrengthBar renders a password strength meter where higher is better:
// red below 40, amber below 70, green at and above.
func StrengthBar(percent float64, width int) string {
	color := styles.Danger
	if percent >= 70 {
		color = styles.Success
	} else if percent >= 40 {
		color = styles.Warning
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar(percent, width))
}

// CountdownBar renders how close a birthday is: the fuller the bar, the
// sooner the day. days is clamped to the 365-day cycle.
func CountdownBar(days int, width int) string {
	if days < 0 {
		days = 0
	}
	if days > 365 {
		days = 365
	}
	percent := float64(365-days) / 365.0 * 100.0

	color := styles.Muted
	if days == 0 {
		color = styles.Primary
	} else if days <= 7 {
		color = styles.Success
	} else if days <= 30 {
		color = styles.Secondary
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar(percent, width))
}
