// ABOUTME: Root command for the bookctl CLI
// ABOUTME: Handles global flags, configuration, and launching the TUI

package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iamkayleb/universal-booking-platform/internal/client"
	"github.com/iamkayleb/universal-booking-platform/internal/config"
	"github.com/iamkayleb/universal-booking-platform/internal/logger"
	"github.com/iamkayleb/universal-booking-platform/internal/store"
	"github.com/iamkayleb/universal-booking-platform/internal/tui"
)

var (
	apiURL     string
	configPath string
	jsonOutput bool
)

// rootCmd is the base command; running it without a subcommand starts the TUI
var rootCmd = &cobra.Command{
	Use:   "bookctl",
	Short: "Client for the Universal Booking API",
	Long: `bookctl is a terminal client for the Universal Booking API.

Run without arguments to open the interactive booking view, or use the
subcommands for scripted access.

Environment Variables:
  BOOKING_API_URL          Booking server URL (default: http://127.0.0.1:8000)
  BOOKING_USERNAME         Account email for authenticated commands
  BOOKING_PASSWORD         Account password (prompted when unset)
  BOOKING_CONFIG           Path to a YAML config file
  LOG_FILE                 Log destination for TUI runs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The TUI owns the terminal; without a log file, discard logs
		// instead of writing over the alternate screen.
		if os.Getenv("LOG_FILE") != "" {
			logger.Init()
		} else {
			logger.Silence()
		}

		stores := store.New(newClient(cfg))
		return tui.Run(stores)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Booking server URL (overrides BOOKING_API_URL)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadConfig merges the config file, environment, and flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	return cfg, nil
}

// newClient builds the API client from the resolved configuration
func newClient(cfg *config.Config) *client.Client {
	return client.NewWithTimeout(cfg.APIURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
