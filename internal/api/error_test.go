// ABOUTME: Tests for error payload normalization
// ABOUTME: Covers both backend error shapes and malformed fallbacks

package api

import (
	"testing"
)

func TestNormalizeBody_ConstraintViolation(t *testing.T) {
	body := []byte(`{
		"title": "Constraint Violation",
		"status": 400,
		"violations": [
			{"field": "createFriend.request.firstName", "message": "First name is required"},
			{"field": "createFriend.request.lastName", "message": "Last name is required"}
		]
	}`)

	apiErr := NormalizeBody(400, body)

	if apiErr.Kind != ErrValidation {
		t.Errorf("expected ErrValidation, got %d", apiErr.Kind)
	}
	if apiErr.Message != "First name is required" {
		t.Errorf("expected first violation message, got %q", apiErr.Message)
	}
	if apiErr.Status != 400 {
		t.Errorf("expected status 400, got %d", apiErr.Status)
	}
	if apiErr.Fields["firstName"] != "First name is required" {
		t.Errorf("expected short field name firstName, got fields %v", apiErr.Fields)
	}
	if apiErr.Fields["lastName"] != "Last name is required" {
		t.Errorf("expected short field name lastName, got fields %v", apiErr.Fields)
	}
	if len(apiErr.Fields) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(apiErr.Fields))
	}
}

func TestNormalizeBody_ConstraintViolationSameMessage(t *testing.T) {
	body := []byte(`{
		"title": "Constraint Violation",
		"status": 400,
		"violations": [
			{"field": "create.req.firstName", "message": "required"},
			{"field": "create.req.lastName", "message": "required"}
		]
	}`)

	apiErr := NormalizeBody(400, body)

	if apiErr.Message != "required" {
		t.Errorf("expected message %q, got %q", "required", apiErr.Message)
	}
	if apiErr.Fields["firstName"] != "required" || apiErr.Fields["lastName"] != "required" {
		t.Errorf("unexpected field map: %v", apiErr.Fields)
	}
}

func TestNormalizeBody_DuplicateShortFieldLastWins(t *testing.T) {
	// Two paths collapsing to the same short name: the later one wins,
	// matching the original normalizer's overwrite behavior.
	body := []byte(`{
		"title": "Constraint Violation",
		"status": 400,
		"violations": [
			{"field": "updateProfile.request.email", "message": "must be valid"},
			{"field": "updateProfile.user.email", "message": "already taken"}
		]
	}`)

	apiErr := NormalizeBody(400, body)

	if apiErr.Fields["email"] != "already taken" {
		t.Errorf("expected last violation to win, got %q", apiErr.Fields["email"])
	}
	if apiErr.Message != "must be valid" {
		t.Errorf("expected primary message from first violation, got %q", apiErr.Message)
	}
}

func TestNormalizeBody_EmptyViolations(t *testing.T) {
	body := []byte(`{"title": "Constraint Violation", "status": 400, "violations": []}`)

	apiErr := NormalizeBody(400, body)

	if apiErr.Kind != ErrValidation {
		t.Errorf("expected ErrValidation, got %d", apiErr.Kind)
	}
	if apiErr.Message != "Validation failed" {
		t.Errorf("expected fallback message, got %q", apiErr.Message)
	}
}

func TestNormalizeBody_BusinessError(t *testing.T) {
	body := []byte(`{
		"message": "Username already exists",
		"status": 409,
		"timestamp": "2024-06-01T12:00:00Z",
		"errors": null
	}`)

	apiErr := NormalizeBody(409, body)

	if apiErr.Kind != ErrBusiness {
		t.Errorf("expected ErrBusiness, got %d", apiErr.Kind)
	}
	if apiErr.Message != "Username already exists" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if apiErr.Status != 409 {
		t.Errorf("expected status 409, got %d", apiErr.Status)
	}
	if apiErr.HasFieldErrors() {
		t.Errorf("expected no field errors, got %v", apiErr.Fields)
	}
}

func TestNormalizeBody_Unauthorized(t *testing.T) {
	body := []byte(`{"message": "Invalid credentials", "status": 401, "errors": null}`)

	apiErr := NormalizeBody(401, body)

	if !apiErr.Unauthorized() {
		t.Error("expected Unauthorized to be true for status 401")
	}
}

func TestNormalizeBody_MalformedNeverEmpty(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   []byte
	}{
		{"empty body", 500, []byte("")},
		{"not json", 502, []byte("<html>Bad Gateway</html>")},
		{"empty object", 500, []byte("{}")},
		{"null", 500, []byte("null")},
		{"array", 500, []byte("[1,2]")},
		{"zero status", 0, []byte("")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apiErr := NormalizeBody(tc.status, tc.body)
			if apiErr == nil {
				t.Fatal("expected non-nil error")
			}
			if apiErr.Message == "" {
				t.Error("expected non-empty message")
			}
			if apiErr.Kind != ErrTransport {
				t.Errorf("expected ErrTransport, got %d", apiErr.Kind)
			}
		})
	}
}

func TestNormalizeBody_FallbackCarriesErrorsMap(t *testing.T) {
	// Legacy shape: message plus a populated errors map, no title marker.
	body := []byte(`{"message": "Validation failed", "errors": {"email": "Invalid format"}}`)

	apiErr := NormalizeBody(400, body)

	if apiErr.Message != "Validation failed" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if apiErr.Fields["email"] != "Invalid format" {
		t.Errorf("expected errors map carried through, got %v", apiErr.Fields)
	}
	if apiErr.Status != 400 {
		t.Errorf("expected status carried from response, got %d", apiErr.Status)
	}
}

func TestNormalizeError_PassesThroughAPIError(t *testing.T) {
	original := &APIError{Kind: ErrBusiness, Message: "Friend not found", Status: 404}

	normalized := NormalizeError(original)

	if normalized != original {
		t.Error("expected existing APIError to pass through unwrapped")
	}
}

func TestNormalizeError_WrapsGenericError(t *testing.T) {
	normalized := NormalizeError(errTest("boom"))

	if normalized.Kind != ErrTransport {
		t.Errorf("expected ErrTransport, got %d", normalized.Kind)
	}
	if normalized.Message != "boom" {
		t.Errorf("unexpected message %q", normalized.Message)
	}
}

func TestNormalizeError_NilError(t *testing.T) {
	normalized := NormalizeError(nil)

	if normalized.Message == "" {
		t.Error("expected generic message for nil error")
	}
}

func TestShortFieldName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"createFriend.request.firstName", "firstName"},
		{"register.request.email", "email"},
		{"password", "password"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := shortFieldName(tc.path); got != tc.expected {
			t.Errorf("shortFieldName(%q) = %q, expected %q", tc.path, got, tc.expected)
		}
	}
}

// errTest is a trivial error type for wrap tests
type errTest string

func (e errTest) Error() string { return string(e) }
