// ABOUTME: Tests for sign-in screen state and navigation messages
// ABOUTME: Drives the model directly with key messages

package login

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krills/birthday-tracker/cli/internal/api"
)

func TestCtrlRSwitchesToRegister(t *testing.T) {
	m := New(100)
	m.Init()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("ctrl+r should emit a command")
	}
	if _, ok := cmd().(SwitchToRegisterMsg); !ok {
		t.Fatalf("got %T, want SwitchToRegisterMsg", cmd())
	}
}

func TestSetErrorKeepsUsernameDropsPassword(t *testing.T) {
	m := New(100)
	m.Init()
	m.username = "kara"
	m.password = "wrong-pass"
	m.submitting = true

	m.SetError(&api.APIError{Kind: api.ErrBusiness, Message: "Invalid credentials", Status: 401})

	if m.username != "kara" {
		t.Errorf("username = %q, want kara", m.username)
	}
	if m.password != "" {
		t.Error("password should be cleared")
	}
	if m.submitting {
		t.Error("SetError should re-arm the form")
	}
	if !strings.Contains(m.View(), "Invalid credentials") {
		t.Error("View should show the error")
	}
}

func TestNoticeRendered(t *testing.T) {
	m := New(100)
	m.Init()
	m.SetNotice("Account created. Please sign in.")

	if !strings.Contains(m.View(), "Account created") {
		t.Error("View should show the notice")
	}
}

func TestSubmittingBlocksInput(t *testing.T) {
	m := New(100)
	m.Init()
	m.submitting = true

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd != nil {
		t.Error("input while submitting should be ignored")
	}
	if !strings.Contains(m.View(), "Signing in") {
		t.Error("View should show progress while submitting")
	}
}
