// ABOUTME: Root command for the birthday-tracker CLI
// ABOUTME: Handles global flags, configuration, and TUI launch

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/krills/birthday-tracker/cli/internal/api"
	"github.com/krills/birthday-tracker/cli/internal/auth"
	"github.com/krills/birthday-tracker/cli/internal/session"
	"github.com/krills/birthday-tracker/cli/internal/tui"
	"github.com/krills/birthday-tracker/cli/internal/tui/debuglog"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command; running it without a subcommand opens the TUI
var rootCmd = &cobra.Command{
	Use:   "birthday-tracker",
	Short: "Track your friends' birthdays from the terminal",
	Long: `birthday-tracker is a terminal client for the Birthday Tracker backend.

Run without arguments to open the interactive UI, or use the subcommands
for scripting and shell pipelines.

Environment Variables:
  BIRTHDAY_API_URL  Backend API URL (default: http://localhost:8080)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir := session.DefaultConfigDir()
		if err := debuglog.Init(configDir); err == nil {
			defer debuglog.Close()
		}

		store := session.New(configDir)
		client := api.New(GetAPIURL(), store)
		return tui.Run(client, auth.NewManager(client, store))
	},
}

// Execute runs the root command
func Execute() error {
	// A .env next to the binary is a convenience for development setups
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides BIRTHDAY_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("BIRTHDAY_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient builds an API client backed by the default session store
func newClient() (*api.Client, *session.Store) {
	store := session.New(session.DefaultConfigDir())
	return api.New(GetAPIURL(), store), store
}
