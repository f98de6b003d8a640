// ABOUTME: Register command for the bookctl CLI
// ABOUTME: Creates an account and its business record on the booking server

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

var (
	registerEmail    string
	registerBusiness string
	registerIndustry string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create a new account and business record on the booking server.
The password is prompted, or taken from BOOKING_PASSWORD when set.

Exit codes:
  0 - Account created
  1 - Rejected by the server (e.g. email already registered)
  2 - Error (connectivity, invalid configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		logger.Init()
		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email (required)")
	registerCmd.Flags().StringVar(&registerBusiness, "business", "", "Business name (required)")
	registerCmd.Flags().StringVar(&registerIndustry, "industry", "", "Business industry")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("business")
}

// runRegister creates the account and returns an exit code
func runRegister(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	password := cfg.Password
	if password == "" {
		fmt.Fprint(w, "Password: ")
		password, err = readPassword(os.Stdin)
		if err != nil {
			fmt.Fprintf(w, "Error: failed to read password: %v\n", err)
			return 2
		}
		fmt.Fprintln(w)
	}
	if password == "" {
		fmt.Fprintln(w, "Error: password cannot be empty")
		return 2
	}

	c := newClient(cfg)
	user, err := c.Register(ctx, &client.RegisterInput{
		Email:    registerEmail,
		Password: password,
		Business: client.BusinessInput{
			Name:     registerBusiness,
			Industry: registerIndustry,
		},
	})
	if err != nil {
		var transport *client.TransportError
		if errors.As(err, &transport) {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintf(w, "Registration rejected: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Account created for %s (id %d)\n", user.Email, user.ID)
	}

	return 0
}
