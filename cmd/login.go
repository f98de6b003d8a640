// ABOUTME: Login command for the bookctl CLI
// ABOUTME: Verifies credentials against the booking server

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iamkayleb/universal-booking-platform/internal/client"
	"github.com/iamkayleb/universal-booking-platform/internal/logger"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify credentials against the server",
	Long: `Submit credentials to the booking server and report whether they are
accepted. The issued token is held in memory only; each command
authenticates for itself.

Exit codes:
  0 - Credentials accepted
  1 - Credentials rejected
  2 - Error (connectivity, invalid configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		logger.Init()
		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "Account email (overrides BOOKING_USERNAME)")
}

// runLogin verifies credentials and returns an exit code
func runLogin(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	username, password, err := resolveCredentials(cfg, loginUsername, w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := newClient(cfg)
	_, err = c.Login(ctx, username, password)
	if err != nil {
		var authErr *client.AuthenticationError
		if errors.As(err, &authErr) {
			fmt.Fprintf(w, "Login failed: %s\n", authErr.Error())
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{"status": "ok", "identity": username}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", username)
	}

	return 0
}
