// ABOUTME: Whoami command for the birthday-tracker CLI
// ABOUTME: Shows the signed-in profile, for humans or JSON pipelines

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/krills/birthday-tracker/cli/internal/api"
	"github.com/krills/birthday-tracker/cli/internal/dateutil"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long: `Show the profile of the signed-in user.

Exit codes:
  0 - Signed in
  1 - Not signed in (no token, or the session has expired)
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami fetches the profile and returns an exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	client, store := newClient()

	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Not signed in. Run 'birthday-tracker login' first.")
		return 1
	}

	user, err := client.Me(ctx)
	if err != nil {
		apiErr := api.NormalizeError(err)
		if apiErr.Unauthorized() {
			fmt.Fprintln(w, "Session expired. Run 'birthday-tracker login' again.")
			return 1
		}
		fmt.Fprintf(w, "Error: %s\n", apiErr.Message)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(user))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(user))
	}
	return 0
}

// formatWhoamiHuman formats the profile for human readability
func formatWhoamiHuman(user *api.User) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Username:  %s\n", user.Username))
	sb.WriteString(fmt.Sprintf("Email:     %s\n", user.Email))
	if name := strings.TrimSpace(user.FirstName + " " + user.LastName); name != "" {
		sb.WriteString(fmt.Sprintf("Name:      %s\n", name))
	}
	if user.BirthDate != "" {
		sb.WriteString(fmt.Sprintf("Birthday:  %s (%d years)",
			dateutil.FormatDate(user.BirthDate), dateutil.Age(user.BirthDate)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatWhoamiJSON formats the profile as JSON
func formatWhoamiJSON(user *api.User) string {
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
