// ABOUTME: Bookings command for the bookctl CLI
// ABOUTME: Lists the authenticated user's bookings with resolved service names

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iamkayleb/universal-booking-platform/internal/client"
	"github.com/iamkayleb/universal-booking-platform/internal/logger"
	"github.com/iamkayleb/universal-booking-platform/internal/store"
)

var bookingsUsername string

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List your bookings",
	Long: `Log in and list your bookings, with service names resolved from the
catalog. A missing catalog degrades to placeholder names.

Exit codes:
  0 - Success
  1 - Credentials rejected
  2 - Error (connectivity, invalid configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		logger.Init()
		exitCode := runBookings(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(bookingsCmd)
	bookingsCmd.Flags().StringVar(&bookingsUsername, "username", "", "Account email (overrides BOOKING_USERNAME)")
}

// runBookings logs in, loads catalog and bookings, and prints the schedule
func runBookings(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	username, password, err := resolveCredentials(cfg, bookingsUsername, w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	stores := store.New(newClient(cfg))

	// The catalog fetch is independent of the session; run both at once.
	// The login refreshes the booking list through its subscription.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_ = stores.Catalog.Load(gctx) // non-fatal, placeholder names cover it
		return nil
	})
	g.Go(func() error {
		_, err := stores.Session.Login(gctx, username, password)
		return err
	})

	if err := g.Wait(); err != nil {
		var authErr *client.AuthenticationError
		if errors.As(err, &authErr) {
			fmt.Fprintf(w, "Login failed: %s\n", authErr.Error())
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	bookings := stores.Bookings.Bookings()
	if IsJSONOutput() {
		fmt.Fprintln(w, formatScheduleJSON(bookings, stores.Catalog))
	} else {
		fmt.Fprint(w, formatScheduleHuman(bookings, stores.Catalog))
	}

	return 0
}

// formatScheduleHuman formats bookings as a table with resolved names
func formatScheduleHuman(bookings []client.Booking, catalog *store.CatalogStore) string {
	if len(bookings) == 0 {
		return "No bookings.\n"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSERVICE\tSTART")
	for _, bk := range bookings {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", bk.ID, catalog.ServiceName(bk.ServiceID), bk.StartTime)
	}
	tw.Flush()
	return sb.String()
}

// formatScheduleJSON formats bookings as JSON with resolved names attached
func formatScheduleJSON(bookings []client.Booking, catalog *store.CatalogStore) string {
	rows := make([]map[string]interface{}, len(bookings))
	for i, bk := range bookings {
		rows[i] = map[string]interface{}{
			"id":           bk.ID,
			"service_id":   bk.ServiceID,
			"service_name": catalog.ServiceName(bk.ServiceID),
			"start_time":   bk.StartTime,
			"end_time":     bk.EndTime,
		}
	}

	data, _ := json.MarshalIndent(rows, "", "  ")
	return string(data)
}
