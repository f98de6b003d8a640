// ABOUTME: Root bubbletea model for the booking client
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iamkayleb/universal-booking-platform/internal/store"
	"github.com/iamkayleb/universal-booking-platform/internal/tui/bookform"
	"github.com/iamkayleb/universal-booking-platform/internal/tui/login"
	"github.com/iamkayleb/universal-booking-platform/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenBrowse
	ScreenBook
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// catalogLoadedMsg is sent when the startup catalog fetch finishes
type catalogLoadedMsg struct {
	err error
}

// loginDoneMsg is sent when a login attempt finishes
type loginDoneMsg struct {
	err error
}

// bookingDoneMsg is sent when a booking creation attempt finishes
type bookingDoneMsg struct {
	err error
}

// refreshDoneMsg is sent when a manual booking refresh finishes
type refreshDoneMsg struct {
	err error
}

// App is the root model for the TUI
type App struct {
	stores     *store.Stores
	screen     Screen
	width      int
	height     int
	cursor     int
	busy       bool
	statusMsg  string
	statusErr  bool
	lastUpdate time.Time
	spin       spinner.Model

	// Child models
	loginView *login.Login
	bookView  *bookform.Form
}

// New creates a new TUI application
func New(stores *store.Stores) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &App{
		stores:    stores,
		screen:    ScreenLogin,
		spin:      sp,
		loginView: login.New(""),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCatalog(), a.loginView.Init())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenBrowse:
			return a.updateBrowse(msg)
		case ScreenBook:
			return a.updateBook(msg)
		}

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case catalogLoadedMsg:
		// A failed catalog load is not blocking: bookings fall back to
		// placeholder names and services can be retried with a restart.
		if msg.err != nil && a.screen == ScreenBrowse {
			a.setStatus("Service list unavailable", true)
		}
		return a, nil

	case login.SubmittedMsg:
		a.busy = true
		return a, tea.Batch(a.spin.Tick, a.doLogin(msg.Email, msg.Password))

	case login.CancelledMsg:
		return a, tea.Quit

	case loginDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.loginView.SetError(msg.err.Error())
			return a, a.loginView.Init()
		}
		a.screen = ScreenBrowse
		a.lastUpdate = time.Now()
		a.statusMsg = ""
		return a, nil

	case bookform.ConfirmedMsg:
		a.busy = true
		return a, tea.Batch(a.spin.Tick, a.doCreateBooking(msg.ServiceID, msg.StartTime))

	case bookform.CancelledMsg:
		a.screen = ScreenBrowse
		a.bookView = nil
		return a, nil

	case bookingDoneMsg:
		a.busy = false
		a.screen = ScreenBrowse
		a.bookView = nil
		if msg.err != nil {
			a.setStatus(msg.err.Error(), true)
		} else {
			a.setStatus("Booking confirmed", false)
			a.lastUpdate = time.Now()
		}
		return a, nil

	case refreshDoneMsg:
		a.busy = false
		if msg.err == nil {
			a.lastUpdate = time.Now()
		}
		return a, nil

	default:
		// Forward unknown messages to the active form (needed for huh internals)
		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenBook:
			return a.updateBook(msg)
		}
	}

	return a, nil
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.loginView == nil || a.busy {
		return a, nil
	}
	model, cmd := a.loginView.Update(msg)
	a.loginView = model.(*login.Login)
	return a, cmd
}

func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	services := a.stores.Catalog.Services()

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(services)-1 {
			a.cursor++
		}
	case "enter", "b":
		if len(services) > 0 {
			svc := services[a.cursor]
			a.bookView = bookform.New(svc.ID, svc.Name)
			a.screen = ScreenBook
			a.statusMsg = ""
			return a, a.bookView.Init()
		}
	case "r":
		a.busy = true
		return a, tea.Batch(a.spin.Tick, a.doRefresh())
	}
	return a, nil
}

func (a *App) updateBook(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.bookView == nil || a.busy {
		return a, nil
	}
	model, cmd := a.bookView.Update(msg)
	a.bookView = model.(*bookform.Form)
	return a, cmd
}

// loadCatalog fetches the service catalog once at startup
func (a *App) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{err: a.stores.Catalog.Load(context.Background())}
	}
}

// doLogin submits credentials. The booking list refresh is triggered by the
// session store's subscription before the message is delivered.
func (a *App) doLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.stores.Session.Login(context.Background(), email, password)
		return loginDoneMsg{err: err}
	}
}

// doCreateBooking runs the booking workflow. On success the list already
// reflects the server's post-creation state.
func (a *App) doCreateBooking(serviceID int, startTime string) tea.Cmd {
	return func() tea.Msg {
		sess, _ := a.stores.Session.Current()
		return bookingDoneMsg{err: a.stores.Workflow.Create(context.Background(), sess, serviceID, startTime)}
	}
}

// doRefresh re-fetches the booking list on demand
func (a *App) doRefresh() tea.Cmd {
	return func() tea.Msg {
		sess, _ := a.stores.Session.Current()
		return refreshDoneMsg{err: a.stores.Bookings.Refresh(context.Background(), sess)}
	}
}

func (a *App) setStatus(msg string, isErr bool) {
	a.statusMsg = msg
	a.statusErr = isErr
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		content = a.viewLogin()
	case ScreenBrowse:
		content = a.viewBrowse()
	case ScreenBook:
		content = a.viewBook()
	default:
		content = a.viewLogin()
	}

	return a.wrapWithFrame(content)
}

// viewLogin renders the login form with a spinner while submitting
func (a *App) viewLogin() string {
	if a.loginView == nil {
		return ""
	}
	content := a.loginView.View()
	if a.busy {
		content += "\n" + a.spin.View() + " Logging in..."
	}
	return styles.ActivePanel.Width(a.frameWidth()).Render(content)
}

// viewBrowse renders the two-pane services/schedule layout
func (a *App) viewBrowse() string {
	leftPane := styles.ActivePanel.Width(a.servicesWidth()).Render(a.viewServices())
	rightPane := styles.Panel.Width(a.scheduleWidth()).Render(a.viewSchedule())

	body := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	if a.statusMsg != "" {
		banner := styles.StatusOK.Render(a.statusMsg)
		if a.statusErr {
			banner = styles.StatusCritical.Render(a.statusMsg)
		}
		return banner + "\n" + body
	}
	if a.busy {
		return a.spin.View() + " Working..." + "\n" + body
	}
	return body
}

// viewServices renders the catalog pane with the selection cursor
func (a *App) viewServices() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Services"))
	sb.WriteString("\n")

	services := a.stores.Catalog.Services()
	if len(services) == 0 {
		sb.WriteString(styles.Subtitle.Render("No services available."))
		return sb.String()
	}

	for i, svc := range services {
		line := fmt.Sprintf("%s  %dmin", svc.Name, svc.Duration)
		if i == a.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// viewSchedule renders the booking list pane, resolving names via the catalog
func (a *App) viewSchedule() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("My Schedule"))
	sb.WriteString("\n")

	bookings := a.stores.Bookings.Bookings()
	if len(bookings) == 0 {
		sb.WriteString(styles.Subtitle.Render("No bookings yet."))
		return sb.String()
	}

	for _, bk := range bookings {
		sb.WriteString(styles.ValueStyle.Render(a.stores.Catalog.ServiceName(bk.ServiceID)))
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render(bk.StartTime))
		sb.WriteString("\n")
	}

	return sb.String()
}

// viewBook renders the start-time form
func (a *App) viewBook() string {
	if a.bookView == nil {
		return ""
	}
	content := a.bookView.View()
	if a.busy {
		content += "\n" + a.spin.View() + " Submitting..."
	}
	return styles.ActivePanel.Width(a.frameWidth()).Render(content)
}

// servicesWidth calculates the width for the services pane
func (a *App) servicesWidth() int {
	if a.width < minTerminalWidth {
		return a.width - panelPadding
	}
	return (a.width - panelPadding) / 2
}

// scheduleWidth calculates the width for the schedule pane
func (a *App) scheduleWidth() int {
	return a.width - a.servicesWidth() - 4
}

// frameWidth calculates the width for single-panel screens
func (a *App) frameWidth() int {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	return width - panelPadding
}

// renderHeader creates the header bar with app branding and identity
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := " " + titleStyle.Render("Universal Booking")

	rightText := ""
	if sess, ok := a.stores.Session.Current(); ok {
		rightText = contextStyle.Render("Logged in as "+sess.Identity) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and refresh status
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Tab Next field", "Enter Submit", "Esc Quit"}
	case ScreenBrowse:
		shortcuts = []string{"↑↓ Navigate", "Enter Book", "r Refresh", "q Quit"}
	case ScreenBook:
		shortcuts = []string{"Enter Confirm", "Esc Cancel"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenBrowse {
		elapsed := a.formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(stores *store.Stores) error {
	app := New(stores)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
