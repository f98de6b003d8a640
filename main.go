// ABOUTME: Entry point for the bookctl CLI
// ABOUTME: Command-line and TUI client for the Universal Booking API

package main

import (
	"fmt"
	"os"

	"github.com/iamkayleb/universal-booking-platform/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
