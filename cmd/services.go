// ABOUTME: Services command for the bookctl CLI
// ABOUTME: Lists the bookable service catalog without authentication

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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iamkayleb/universal-booking-platform/internal/client"
	"github.com/iamkayleb/universal-booking-platform/internal/logger"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List bookable services",
	Long: `List the service catalog from the booking server.

Exit codes:
  0 - Success
  2 - Error (connectivity, invalid configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		logger.Init()
		exitCode := runServices(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(servicesCmd)
}

// runServices fetches and prints the catalog, returning an exit code
func runServices(ctx context.Context, w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := newClient(cfg)
	services, err := c.ListServices(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatServicesJSON(services))
	} else {
		fmt.Fprint(w, formatServicesHuman(services))
	}

	return 0
}

// formatServicesHuman formats the catalog as a table
func formatServicesHuman(services []client.Service) string {
	if len(services) == 0 {
		return "No services available.\n"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDURATION\tPRICE")
	for _, svc := range services {
		fmt.Fprintf(tw, "%d\t%s\t%dmin\t%d\n", svc.ID, svc.Name, svc.Duration, svc.Price)
	}
	tw.Flush()
	return sb.String()
}

// formatServicesJSON formats the catalog as JSON
func formatServicesJSON(services []client.Service) string {
	data, _ := json.MarshalIndent(services, "", "  ")
	return string(data)
}
