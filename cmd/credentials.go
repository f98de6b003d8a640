// ABOUTME: Credential resolution for authenticated CLI commands
// ABOUTME: Reads from flags, config, and interactive prompts

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/iamkayleb/universal-booking-platform/internal/config"
)

// resolveCredentials returns the account email and password, prompting for
// whichever is missing. Passwords are read without echo when stdin is a
// terminal.
func resolveCredentials(cfg *config.Config, usernameFlag string, w io.Writer) (string, string, error) {
	username := usernameFlag
	if username == "" {
		username = cfg.Username
	}
	if username == "" {
		fmt.Fprint(w, "Email: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("failed to read email: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return "", "", fmt.Errorf("email is required")
	}

	password := cfg.Password
	if password == "" {
		fmt.Fprint(w, "Password: ")
		var err error
		password, err = readPassword(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(w)
	}
	if strings.TrimSpace(password) == "" {
		return "", "", fmt.Errorf("password cannot be empty")
	}

	return username, password, nil
}

// readPassword reads a password without echo when possible
func readPassword(stdin *os.File) (string, error) {
	fd := int(stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Piped input (tests, scripts): read a single line.
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
