// ABOUTME: Date display helpers for birthdays and profile fields
// ABOUTME: Formats backend date strings and computes ages for display

package dateutil

import (
	"time"
)

// InputLayout is the wire format for dates sent to the backend
const InputLayout = "2006-01-02"

// layouts the backend has been seen to produce, tried in order
var parseLayouts = []string{
	InputLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Parse reads a backend date string
func Parse(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range parseLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatDate renders a full date like "January 2, 2006".
// Unparseable input is echoed back rather than erroring the UI.
func FormatDate(value string) string {
	t, err := Parse(value)
	if err != nil {
		return value
	}
	return t.Format("January 2, 2006")
}

// FormatBirthday renders a date without the year, like "January 2"
func FormatBirthday(value string) string {
	t, err := Parse(value)
	if err != nil {
		return value
	}
	return t.Format("January 2")
}

// FormatForInput renders a date in the form expected by date fields,
// empty for unparseable input
func FormatForInput(value string) string {
	t, err := Parse(value)
	if err != nil {
		return ""
	}
	return t.Format(InputLayout)
}

// Age returns the current age in whole years, 0 for bad input
func Age(birthDate string) int {
	return AgeAt(birthDate, time.Now())
}

// AgeAt returns the age in whole years as of the given moment
func AgeAt(birthDate string, now time.Time) int {
	birth, err := Parse(birthDate)
	if err != nil {
		return 0
	}
	years := now.Year() - birth.Year()
	// Birthday not reached yet this year
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// BirthMonth returns the month of a birth date, false for bad input
func BirthMonth(birthDate string) (time.Month, bool) {
	t, err := Parse(birthDate)
	if err != nil {
		return 0, false
	}
	return t.Month(), true
}
