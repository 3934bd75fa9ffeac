// ABOUTME: Client-side form validation for registration and password changes
// ABOUTME: Mirrors the complexity rules the backend enforces server-side

package validate

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	specialChars = `!@#$%^&*(),.?":{}|<>`
)

// Email reports whether the string looks like an email address.
// Deliverability is the backend's problem; this only catches typos.
func Email(email string) bool {
	return emailRe.MatchString(email)
}

// Password returns the list of unmet complexity rules, empty when valid.
// Order matches the backend so the first message shown is consistent.
func Password(password string) []string {
	var errs []string
	if len(password) < 8 {
		errs = append(errs, "Password must be at least 8 characters long")
	}
	if !strings.ContainsAny(password, upperChars) {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !strings.ContainsAny(password, lowerChars) {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !strings.ContainsAny(password, digitChars) {
		errs = append(errs, "Password must contain at least one digit")
	}
	if !strings.ContainsAny(password, specialChars) {
		errs = append(errs, "Password must contain at least one special character")
	}
	return errs
}

// Strength is a rough password strength estimate for the signup meter
type Strength struct {
	Label      string // weak, medium, strong
	Percentage int
}

// PasswordStrength scores a password 0-100. Each satisfied criterion only
// adds points, so the score is monotonic in added character classes.
func PasswordStrength(password string) Strength {
	score := 0
	if len(password) >= 8 {
		score += 20
	}
	if len(password) >= 12 {
		score += 10
	}
	if strings.ContainsAny(password, upperChars) {
		score += 20
	}
	if strings.ContainsAny(password, lowerChars) {
		score += 20
	}
	if strings.ContainsAny(password, digitChars) {
		score += 15
	}
	if strings.ContainsAny(password, specialChars) {
		score += 15
	}
	if score > 100 {
		score = 100
	}

	label := "weak"
	if score >= 70 {
		label = "strong"
	} else if score >= 40 {
		label = "medium"
	}
	return Strength{Label: label, Percentage: score}
}

// PasswordChange checks the cross-field rules for a password change.
// Returns per-field messages keyed like the backend's violations, nil when valid.
func PasswordChange(oldPassword, newPassword, confirmNewPassword string) map[string]string {
	errs := make(map[string]string)
	if newPassword != confirmNewPassword {
		errs["confirmNewPassword"] = "New password and confirmation do not match"
	}
	if oldPassword != "" && oldPassword == newPassword {
		errs["newPassword"] = "New password must be different from old password"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
