// ABOUTME: Tests for registration screen navigation and error re-arm
// ABOUTME: Drives the model directly with key messages

package register

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krills/birthday-tracker/cli/internal/api"
)

func TestEscSwitchesToLogin(t *testing.T) {
	m := New(100)
	m.Init()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should emit a command")
	}
	if _, ok := cmd().(SwitchToLoginMsg); !ok {
		t.Fatalf("got %T, want SwitchToLoginMsg", cmd())
	}
}

func TestSetErrorKeepsFieldsDropsPasswords(t *testing.T) {
	m := New(100)
	m.Init()
	m.username = "newuser"
	m.email = "new@example.com"
	m.password = "Secret1!"
	m.confirm = "Secret1!"
	m.submitting = true

	m.SetError(&api.APIError{
		Kind:    api.ErrValidation,
		Message: "Username is already taken",
		Status:  409,
		Fields:  map[string]string{"username": "Username is already taken"},
	})

	if m.username != "newuser" || m.email != "new@example.com" {
		t.Error("entered values should survive a failed registration")
	}
	if m.password != "" || m.confirm != "" {
		t.Error("passwords should be cleared")
	}
	if m.submitting {
		t.Error("SetError should re-arm the form")
	}
	view := m.View()
	if !strings.Contains(view, "Username is already taken") {
		t.Error("View should show the error")
	}
}

func TestStrengthBarOnlyWithPassword(t *testing.T) {
	m := New(100)
	m.Init()

	if strings.Contains(m.View(), "weak") {
		t.Error("no strength label before a password is typed")
	}

	m.password = "abc"
	if !strings.Contains(m.View(), "weak") {
		t.Error("a typed password should show its strength label")
	}
}
