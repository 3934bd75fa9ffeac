// ABOUTME: Friends command for the birthday-tracker CLI
// ABOUTME: Lists friends with their birthdays and countdowns

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

var friendsUpcoming bool

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "List your friends and their birthdays",
	Long: `List your friends with birthdays and day counts.

Exit codes:
  0 - Listed
  1 - Not signed in (no token, or the session has expired)
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runFriends(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(friendsCmd)
	friendsCmd.Flags().BoolVar(&friendsUpcoming, "upcoming", false, "Order by next birthday instead of name")
}

// runFriends fetches and prints the friend list, returning an exit code
func runFriends(ctx context.Context, w io.Writer) int {
	client, store := newClient()

	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Not signed in. Run 'birthday-tracker login' first.")
		return 1
	}

	var friends []api.Friend
	var err error
	if friendsUpcoming {
		friends, err = client.UpcomingFriends(ctx)
	} else {
		friends, err = client.Friends(ctx)
	}
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
		fmt.Fprintln(w, formatFriendsJSON(friends))
	} else {
		fmt.Fprintln(w, formatFriendsHuman(friends))
	}
	return 0
}

// formatFriendsHuman formats the friend list as an aligned table
func formatFriendsHuman(friends []api.Friend) string {
	if len(friends) == 0 {
		return "No friends yet. Add some via the interactive UI."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-28s %-14s %s\n", "NAME", "BIRTHDAY", "DAYS"))
	for _, f := range friends {
		sb.WriteString(fmt.Sprintf("%-28s %-14s %s\n",
			f.Name(),
			dateutil.FormatBirthday(f.BirthDate),
			formatDaysUntil(f)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatDaysUntil renders the countdown column
func formatDaysUntil(f api.Friend) string {
	if f.IsBirthdayToday || f.DaysUntilBirthday == 0 {
		return "today!"
	}
	if f.DaysUntilBirthday == 1 {
		return "tomorrow"
	}
	return fmt.Sprintf("in %d days", f.DaysUntilBirthday)
}

// formatFriendsJSON formats the friend list as JSON
func formatFriendsJSON(friends []api.Friend) string {
	if friends == nil {
		friends = []api.Friend{}
	}
	data, err := json.MarshalIndent(friends, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
