package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/finshield/console/internal/auth"
)

// authForm field indices. Username only participates in signup mode.
const (
	fieldEmail = iota
	fieldUsername
	fieldPassword
)

type authForm struct {
	signup   bool
	email    textinput.Model
	username textinput.Model
	password textinput.Model
	focus    int
	errMsg   string
	busy     bool
}

func newAuthForm() authForm {
	email := textinput.New()
	email.Placeholder = "analyst@example.com"
	email.CharLimit = 120

	username := textinput.New()
	username.Placeholder = "analyst"
	username.CharLimit = 60

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return authForm{
		email:    email,
		username: username,
		password: password,
	}
}

func (f authForm) focusCmd() tea.Cmd {
	return f.email.Focus()
}

func (f authForm) fields() []int {
	if f.signup {
		return []int{fieldEmail, fieldUsername, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (f *authForm) input(field int) *textinput.Model {
	switch field {
	case fieldUsername:
		return &f.username
	case fieldPassword:
		return &f.password
	}
	return &f.email
}

func (f *authForm) moveFocus(step int) tea.Cmd {
	fields := f.fields()
	current := 0
	for i, field := range fields {
		if field == f.focus {
			current = i
		}
	}
	f.input(f.focus).Blur()

	next := (current + step + len(fields)) % len(fields)
	f.focus = fields[next]
	return f.input(f.focus).Focus()
}

func (f authForm) update(msg tea.Msg) (authForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldUsername:
		f.username, cmd = f.username.Update(msg)
	case fieldPassword:
		f.password, cmd = f.password.Update(msg)
	default:
		f.email, cmd = f.email.Update(msg)
	}
	return f, cmd
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.auth.busy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m, m.auth.moveFocus(1)

	case "shift+tab", "up":
		return m, m.auth.moveFocus(-1)

	case "ctrl+s":
		// Toggle between sign-in and sign-up.
		m.auth.signup = !m.auth.signup
		m.auth.errMsg = ""
		if !m.auth.signup && m.auth.focus == fieldUsername {
			return m, m.auth.moveFocus(1)
		}
		return m, nil

	case "enter":
		return m.submitAuth()
	}

	var cmd tea.Cmd
	m.auth, cmd = m.auth.update(msg)
	return m, cmd
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.auth.email.Value())
	username := strings.TrimSpace(m.auth.username.Value())
	password := m.auth.password.Value()

	// Client-side validation short-circuits the request entirely.
	var invalid string
	if m.auth.signup {
		invalid = auth.ValidateSignup(email, username, password)
	} else {
		invalid = auth.ValidateLogin(email, password)
	}
	if invalid != "" {
		m.auth.errMsg = invalid
		return m, nil
	}

	m.auth.errMsg = ""
	m.auth.busy = true

	a := m.app
	signup := m.auth.signup
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if signup {
			return authDoneMsg{err: a.Auth.SignUp(ctx, email, username, password)}
		}
		return authDoneMsg{err: a.Auth.LogIn(ctx, email, password)}
	}
}

func (m Model) viewAuth() string {
	f := m.auth

	title := "Sign In"
	action := "sign in"
	if f.signup {
		title = "Create Account"
		action = "create account"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.authField("Email", &f.email, f.focus == fieldEmail))
	if f.signup {
		b.WriteString(m.authField("Username", &f.username, f.focus == fieldUsername))
	}
	b.WriteString(m.authField("Password", &f.password, f.focus == fieldPassword))

	if f.busy {
		b.WriteString("\n" + dimStyle.Render("Signing in...") + "\n")
	} else if f.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(f.errMsg) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Enter: %s  Ctrl+S: switch mode  Tab: next field  Ctrl+C: quit", action)))

	box := boxStyle.Width(58).Render(b.String())
	header := titleStyle.Render("FinShield Console")
	body := header + "\n" + lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, box)

	if toast := m.renderToast(); toast != "" {
		body += "\n" + toast
	}
	return body
}

func (m Model) authField(label string, input *textinput.Model, focused bool) string {
	style := lipgloss.NewStyle().Width(10)
	if focused {
		style = style.Bold(true).Foreground(lipgloss.Color("39"))
	} else {
		style = style.Foreground(lipgloss.Color("252"))
	}
	return style.Render(label) + input.View() + "\n"
}
