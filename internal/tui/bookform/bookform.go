// ABOUTME: Start-time entry form for creating a booking
// ABOUTME: Validates non-emptiness only; format errors come back from the server

package bookform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/iamkayleb/universal-booking-platform/internal/tui/styles"
)

// ConfirmedMsg is sent when the user confirms a start time
type ConfirmedMsg struct {
	ServiceID int
	StartTime string
}

// CancelledMsg is sent when the user backs out of the form
type CancelledMsg struct{}

// Form collects a start time for a booking against one service
type Form struct {
	form        *huh.Form
	serviceID   int
	serviceName string
	startTime   string
}

// New creates a booking form for the given service
func New(serviceID int, serviceName string) *Form {
	f := &Form{serviceID: serviceID, serviceName: serviceName}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start time").
				Description("Format: YYYY-MM-DDTHH:MM:SS").
				Placeholder("2026-03-01T10:00:00").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("start time is required")
					}
					return nil
				}).
				Value(&f.startTime),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
	return f
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}

	if f.form.State == huh.StateCompleted {
		serviceID, startTime := f.serviceID, f.startTime
		return f, func() tea.Msg {
			return ConfirmedMsg{ServiceID: serviceID, StartTime: startTime}
		}
	}

	return f, cmd
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Book " + f.serviceName))
	sb.WriteString("\n")
	sb.WriteString(f.form.View())

	return sb.String()
}
