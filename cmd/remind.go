// ABOUTME: Remind command for the birthday-tracker CLI
// ABOUTME: Exits non-zero when birthdays fall inside the window, for cron alerts

package cmd

import (
	"context"
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

var remindDays int

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Check for birthdays within the next days",
	Long: `Check for birthdays within the given window and exit non-zero when
there are any, so cron jobs and shell hooks can trigger notifications.

Exit codes:
  0 - No birthdays inside the window
  1 - One or more birthdays inside the window
  2 - Error (connectivity, not signed in, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRemind(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.Flags().IntVar(&remindDays, "days", 7, "Window size in days")
}

// runRemind checks the reminder window and returns an exit code
func runRemind(ctx context.Context, w io.Writer) int {
	if err := validateRemindDays(remindDays); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	client, store := newClient()
	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Error: not signed in. Run 'birthday-tracker login' first.")
		return 2
	}

	friends, err := client.UpcomingFriends(ctx)
	if err != nil {
		apiErr := api.NormalizeError(err)
		fmt.Fprintf(w, "Error: %s\n", apiErr.Message)
		return 2
	}

	due := friendsInWindow(friends, remindDays)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatFriendsJSON(due))
	} else {
		fmt.Fprintln(w, formatRemindHuman(due, remindDays))
	}

	if len(due) > 0 {
		return 1
	}
	return 0
}

// validateRemindDays ensures the window size is sane
func validateRemindDays(days int) error {
	if days < 0 || days > 365 {
		return fmt.Errorf("--days must be between 0 and 365")
	}
	return nil
}

// friendsInWindow selects friends whose birthday falls within the window
func friendsInWindow(friends []api.Friend, days int) []api.Friend {
	var due []api.Friend
	for _, f := range friends {
		if f.IsBirthdayToday || f.DaysUntilBirthday <= days {
			due = append(due, f)
		}
	}
	return due
}

// formatRemindHuman formats the reminder list for human readability
func formatRemindHuman(due []api.Friend, days int) string {
	if len(due) == 0 {
		return fmt.Sprintf("No birthdays in the next %d days.", days)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d birthday(s) in the next %d days:\n", len(due), days))
	for _, f := range due {
		sb.WriteString(fmt.Sprintf("  %s - %s (%s)\n",
			f.Name(),
			dateutil.FormatBirthday(f.BirthDate),
			formatDaysUntil(f)))
	}
	return strings.TrimRight(sb.String(), "\n")
}
