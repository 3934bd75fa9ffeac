// ABOUTME: Logout command for the birthday-tracker CLI
// ABOUTME: Discards the stored session token without a network call

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/krills/birthday-tracker/cli/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns an exit code
func runLogout(w io.Writer) int {
	store := session.New(session.DefaultConfigDir())

	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Not signed in.")
		return 0
	}
	if err := store.Clear(); err != nil {
		fmt.Fprintf(w, "Error: could not remove session token: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Signed out.")
	return 0
}
