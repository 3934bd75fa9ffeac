// ABOUTME: Tests for the whoami command output and exit codes
// ABOUTME: Runs against an httptest backend via environment overrides

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/krills/birthday-tracker/cli/internal/api"
)

func TestFormatWhoamiHuman(t *testing.T) {
	user := &api.User{
		Username:  "kara",
		Email:     "kara@example.com",
		FirstName: "Kara",
		LastName:  "Danvers",
		BirthDate: "1990-09-22",
	}
	out := formatWhoamiHuman(user)

	for _, want := range []string{"kara", "kara@example.com", "Kara Danvers", "September 22, 1990"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestFormatWhoamiHumanSparseProfile(t *testing.T) {
	out := formatWhoamiHuman(&api.User{Username: "kara", Email: "kara@example.com"})
	if strings.Contains(out, "Name:") {
		t.Error("empty name should be omitted")
	}
	if strings.Contains(out, "Birthday:") {
		t.Error("empty birthday should be omitted")
	}
}

func TestRunWhoami(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/me" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(api.User{ID: "u1", Username: "kara", Email: "kara@example.com"})
	}))
	t.Cleanup(server.Close)
	setupCmdEnv(t, server.URL)

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), &buf); code != 0 {
		t.Fatalf("exit code = %d, want 0; output: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "kara") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRunWhoamiNotSignedIn(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	apiURL = ""

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), &buf); code != 1 {
		t.Errorf("exit code = %d, want 1; output: %s", code, buf.String())
	}
}

func TestRunWhoamiJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.User{ID: "u1", Username: "kara"})
	}))
	t.Cleanup(server.Close)
	setupCmdEnv(t, server.URL)

	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), &buf); code != 0 {
		t.Fatalf("exit code = %d, want 0; output: %s", code, buf.String())
	}
	var decoded api.User
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Username != "kara" {
		t.Errorf("decoded username = %q, want kara", decoded.Username)
	}
}
