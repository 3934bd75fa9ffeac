// ABOUTME: Tests for the friend form's prefill, cancel, and error re-arm
// ABOUTME: Drives the model directly with key messages

package friendform

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krills/birthday-tracker/cli/internal/api"
)

func TestEditPrefillsFields(t *testing.T) {
	m := NewEdit(api.Friend{
		ID:        "f1",
		FirstName: "Amy",
		LastName:  "Santiago",
		BirthDate: "1985-04-01T00:00:00",
	}, 100)

	if !m.Editing() {
		t.Error("NewEdit should mark the form as editing")
	}
	if m.firstName != "Amy" || m.lastName != "Santiago" {
		t.Errorf("prefill = %q/%q", m.firstName, m.lastName)
	}
	// Backend timestamps are reduced to the date-input format
	if m.birthDate != "1985-04-01" {
		t.Errorf("birthDate = %q, want 1985-04-01", m.birthDate)
	}
}

func TestNewIsAddMode(t *testing.T) {
	m := New(100)
	if m.Editing() {
		t.Error("New should not be in edit mode")
	}
	if !strings.Contains(m.View(), "Add Friend") {
		t.Error("View should show the add heading")
	}
}

func TestEscCancels(t *testing.T) {
	m := New(100)
	m.Init()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should emit a command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Fatalf("got %T, want CancelledMsg", cmd())
	}
}

func TestSetErrorPreservesInput(t *testing.T) {
	m := New(100)
	m.Init()
	m.firstName = "Amy"
	m.lastName = "Santiago"
	m.birthDate = "3000-01-01"
	m.submitting = true

	m.SetError(&api.APIError{
		Kind:    api.ErrValidation,
		Message: "Validation failed",
		Status:  400,
		Fields:  map[string]string{"birthDate": "must be a past date"},
	})

	if m.firstName != "Amy" || m.birthDate != "3000-01-01" {
		t.Error("entered values should survive a failed save")
	}
	if m.submitting {
		t.Error("SetError should re-arm the form")
	}
	view := m.View()
	if !strings.Contains(view, "must be a past date") {
		t.Error("View should show the field error")
	}
}
