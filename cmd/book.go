// ABOUTME: Book command for the bookctl CLI
// ABOUTME: Creates a booking and prints the refreshed schedule

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iamkayleb/universal-booking-platform/internal/client"
	"github.com/iamkayleb/universal-booking-platform/internal/logger"
	"github.com/iamkayleb/universal-booking-platform/internal/store"
)

var (
	bookUsername  string
	bookServiceID int
	bookStartTime string
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Create a booking",
	Long: `Log in and book a service at the given start time. On success the
printed schedule reflects the server state after the booking.

Exit codes:
  0 - Booking confirmed
  1 - Rejected (bad credentials or booking refused by the server)
  2 - Error (connectivity, invalid configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		logger.Init()
		exitCode := runBook(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(bookCmd)
	bookCmd.Flags().StringVar(&bookUsername, "username", "", "Account email (overrides BOOKING_USERNAME)")
	bookCmd.Flags().IntVar(&bookServiceID, "service", 0, "Service id to book (required)")
	bookCmd.Flags().StringVar(&bookStartTime, "start", "", "Start time, e.g. 2026-03-01T10:00:00 (required)")
	bookCmd.MarkFlagRequired("service")
	bookCmd.MarkFlagRequired("start")
}

// runBook creates the booking and returns an exit code
func runBook(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	username, password, err := resolveCredentials(cfg, bookUsername, w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	stores := store.New(newClient(cfg))

	// Name resolution only; a failed catalog load falls back to placeholders.
	_ = stores.Catalog.Load(ctx)

	sess, err := stores.Session.Login(ctx, username, password)
	if err != nil {
		var authErr *client.AuthenticationError
		if errors.As(err, &authErr) {
			fmt.Fprintf(w, "Login failed: %s\n", authErr.Error())
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := stores.Workflow.Create(ctx, sess, bookServiceID, bookStartTime); err != nil {
		var rejected *client.BookingRejectedError
		if errors.As(err, &rejected) {
			fmt.Fprintf(w, "Booking rejected: %s\n", rejected.Error())
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	bookings := stores.Bookings.Bookings()
	if IsJSONOutput() {
		fmt.Fprintln(w, formatScheduleJSON(bookings, stores.Catalog))
	} else {
		fmt.Fprintf(w, "Booking confirmed: %s at %s\n\n", stores.Catalog.ServiceName(bookServiceID), bookStartTime)
		fmt.Fprint(w, formatScheduleHuman(bookings, stores.Catalog))
	}

	return 0
}
