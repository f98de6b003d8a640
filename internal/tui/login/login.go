// ABOUTME: Login form as a bubbletea child model
// ABOUTME: Collects credentials with huh and reports submission upward

package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/iamkayleb/universal-booking-platform/internal/tui/styles"
)

// SubmittedMsg is sent when the user submits the form
type SubmittedMsg struct {
	Email    string
	Password string
}

// CancelledMsg is sent when the user leaves the login form
type CancelledMsg struct{}

// Login wraps a huh form for credential entry
type Login struct {
	form     *huh.Form
	email    string
	password string
	errMsg   string
}

// New creates a login form, optionally pre-filling the email field
func New(email string) *Login {
	l := &Login{email: email}
	l.form = l.newForm()
	return l
}

func (l *Login) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Validate(notEmpty("email")).
				Value(&l.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(notEmpty("password")).
				Value(&l.password),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return &emptyFieldError{field: field}
		}
		return nil
	}
}

type emptyFieldError struct {
	field string
}

func (e *emptyFieldError) Error() string {
	return e.field + " is required"
}

// SetError displays a rejection message and resets the form for re-submission
func (l *Login) SetError(msg string) {
	l.errMsg = msg
	l.password = ""
	l.form = l.newForm()
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return l, func() tea.Msg { return CancelledMsg{} }
	}

	model, cmd := l.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		l.form = form
	}

	if l.form.State == huh.StateCompleted {
		email, password := l.email, l.password
		return l, func() tea.Msg {
			return SubmittedMsg{Email: email, Password: password}
		}
	}

	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Log in"))
	sb.WriteString("\n")
	if l.errMsg != "" {
		sb.WriteString(styles.StatusCritical.Render(l.errMsg))
		sb.WriteString("\n\n")
	}
	sb.WriteString(l.form.View())

	return sb.String()
}
