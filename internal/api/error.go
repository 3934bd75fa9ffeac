// ABOUTME: Normalizes the backend's two error payload shapes into one APIError
// ABOUTME: Classifies each failure as validation, business, or transport once at the boundary

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind tags an APIError with its origin so callers never re-sniff shapes.
type ErrorKind int

const (
	// ErrValidation carries per-field messages from a constraint-violation payload
	ErrValidation ErrorKind = iota
	// ErrBusiness is a single-message domain rule failure (409 duplicate, 401 bad credentials, 404)
	ErrBusiness
	// ErrTransport covers network failures and malformed or unrecognized payloads
	ErrTransport
)

// violationTitle is the literal marker the backend puts on validation payloads
const violationTitle = "Constraint Violation"

// genericMessage is the last-resort user-facing error text
const genericMessage = "An unexpected error occurred"

// APIError is the single normalized error shape every failed call produces.
type APIError struct {
	Kind    ErrorKind
	Message string
	Status  int
	Fields  map[string]string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Unauthorized reports whether this failure should force a logout.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// HasFieldErrors reports whether per-field messages are available for inline display
func (e *APIError) HasFieldErrors() bool {
	return len(e.Fields) > 0
}

// Field returns the message for a single form field, if any
func (e *APIError) Field(name string) string {
	return e.Fields[name]
}

type violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// rawError can hold either backend error shape; which one arrived is
// decided by NormalizeBody, not by the decoder.
type rawError struct {
	Title      string          `json:"title"`
	Status     int             `json:"status"`
	Violations []violation     `json:"violations"`
	Message    string          `json:"message"`
	Errors     json.RawMessage `json:"errors"`
}

// NormalizeBody converts a non-2xx response body into an APIError.
// It never fails: unrecognized or malformed bodies degrade to ErrTransport
// with a non-empty message.
func NormalizeBody(statusCode int, body []byte) *APIError {
	var raw rawError
	if err := json.Unmarshal(body, &raw); err != nil {
		return &APIError{
			Kind:    ErrTransport,
			Message: statusMessage(statusCode),
			Status:  statusCode,
		}
	}

	// Constraint-violation shape: title marker plus an ordered violations list.
	// Field keys keep only the last dot segment of the backend's property path;
	// when two paths collapse to the same short name the later violation wins.
	if raw.Title == violationTitle && raw.Violations != nil {
		fields := make(map[string]string, len(raw.Violations))
		for _, v := range raw.Violations {
			fields[shortFieldName(v.Field)] = v.Message
		}
		message := "Validation failed"
		if len(raw.Violations) > 0 {
			message = raw.Violations[0].Message
		}
		status := raw.Status
		if status == 0 {
			status = statusCode
		}
		return &APIError{Kind: ErrValidation, Message: message, Status: status, Fields: fields}
	}

	// Business shape: message, status, and an explicitly null errors field.
	if raw.Message != "" && raw.Status != 0 && isJSONNull(raw.Errors) {
		return &APIError{Kind: ErrBusiness, Message: raw.Message, Status: raw.Status}
	}

	// Fallback: salvage whatever the payload offered.
	message := raw.Message
	if message == "" {
		message = statusMessage(statusCode)
	}
	status := raw.Status
	if status == 0 {
		status = statusCode
	}
	var fields map[string]string
	if len(raw.Errors) > 0 && !isJSONNull(raw.Errors) {
		// Best effort only; a non-object errors value is ignored.
		json.Unmarshal(raw.Errors, &fields)
	}
	return &APIError{Kind: ErrTransport, Message: message, Status: status, Fields: fields}
}

// NormalizeError wraps an arbitrary failure as an APIError without
// double-wrapping ones that already are.
func NormalizeError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	message := genericMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &APIError{Kind: ErrTransport, Message: message}
}

// shortFieldName extracts the form field name from a full property path
// like "createFriend.request.firstName".
func shortFieldName(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func statusMessage(statusCode int) string {
	if statusCode > 0 {
		return fmt.Sprintf("backend returned status %d", statusCode)
	}
	return genericMessage
}
