// ABOUTME: Tests for root command configuration resolution
// ABOUTME: Covers flag, environment, and default API URL precedence

package cmd

import "testing"

func TestGetAPIURLDefault(t *testing.T) {
	apiURL = ""
	t.Setenv("BIRTHDAY_API_URL", "")

	if got := GetAPIURL(); got != defaultAPIURL {
		t.Errorf("GetAPIURL() = %q, want %q", got, defaultAPIURL)
	}
}

func TestGetAPIURLFromEnv(t *testing.T) {
	apiURL = ""
	t.Setenv("BIRTHDAY_API_URL", "http://env.example.com")

	if got := GetAPIURL(); got != "http://env.example.com" {
		t.Errorf("GetAPIURL() = %q, want env value", got)
	}
}

func TestGetAPIURLFlagBeatsEnv(t *testing.T) {
	apiURL = "http://flag.example.com"
	defer func() { apiURL = "" }()
	t.Setenv("BIRTHDAY_API_URL", "http://env.example.com")

	if got := GetAPIURL(); got != "http://flag.example.com" {
		t.Errorf("GetAPIURL() = %q, want flag value", got)
	}
}

func TestIsJSONOutput(t *testing.T) {
	jsonOutput = false
	if IsJSONOutput() {
		t.Error("IsJSONOutput() should default to false")
	}
	jsonOutput = true
	defer func() { jsonOutput = false }()
	if !IsJSONOutput() {
		t.Error("IsJSONOutput() should reflect the flag")
	}
}
