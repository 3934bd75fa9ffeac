// ABOUTME: Login command for the birthday-tracker CLI
// ABOUTME: Prompts for credentials and stores the session token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/krills/birthday-tracker/cli/internal/api"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store a session token",
	Long: `Sign in against the backend and store the session token in the user
config directory. Later commands and the interactive UI reuse it.

Exit codes:
  0 - Signed in
  1 - Invalid credentials
  2 - Error (connectivity, prompt aborted)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username (prompted when omitted)")
}

// runLogin prompts for credentials, signs in, and returns an exit code
func runLogin(ctx context.Context, w io.Writer) int {
	username := strings.TrimSpace(loginUsername)
	var password string

	var fields []huh.Field
	if username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&username).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("Username is required")
				}
				return nil
			}))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Validate(func(s string) error {
			if s == "" {
				return fmt.Errorf("Password is required")
			}
			return nil
		}))

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	client, store := newClient()
	resp, err := client.Login(ctx, &api.LoginRequest{
		Username: strings.TrimSpace(username),
		Password: password,
	})
	if err != nil {
		apiErr := api.NormalizeError(err)
		fmt.Fprintf(w, "Error: %s\n", apiErr.Message)
		if apiErr.Kind == api.ErrTransport {
			return 2
		}
		return 1
	}

	if err := store.Save(resp.Token); err != nil {
		fmt.Fprintf(w, "Error: could not store session token: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Signed in as %s.\n", resp.Username)
	return 0
}
