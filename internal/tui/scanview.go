package tui

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/finshield/console/internal/scan"
)

type scanForm struct {
	text textinput.Model
	path textinput.Model
	spin spinner.Model
}

func newScanForm() scanForm {
	text := textinput.New()
	text.Placeholder = "paste a suspicious message..."
	text.CharLimit = 4000

	path := textinput.New()
	path.Placeholder = "/path/to/file.jpg"
	path.CharLimit = 500

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return scanForm{text: text, path: path, spin: spin}
}

func (f scanForm) focusCmd() tea.Cmd {
	return f.text.Focus()
}

// capturing reports whether a text field owns the keyboard, so the
// dashboard's single-key shortcuts stay out of typed input.
func (f scanForm) capturing() bool {
	return f.text.Focused() || f.path.Focused()
}

func (f scanForm) update(msg tea.Msg) (scanForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.path.Focused() {
		f.path, cmd = f.path.Update(msg)
	} else {
		f.text, cmd = f.text.Update(msg)
	}
	return f, cmd
}

func (m Model) updateScan(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.scanForm.text.Blur()
		m.scanForm.path.Blur()
		m.app.Scans.Reset()
		return m, nil

	case "tab":
		if m.scanForm.text.Focused() {
			m.scanForm.text.Blur()
			return m, m.scanForm.path.Focus()
		}
		m.scanForm.path.Blur()
		return m, m.scanForm.text.Focus()

	case "enter":
		if m.scanForm.path.Focused() {
			return m.submitFile()
		}
		return m.submitText()
	}

	if !m.scanForm.capturing() {
		switch msg.String() {
		case "s":
			return m, m.scanForm.text.Focus()
		case "f":
			return m, m.scanForm.path.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.scanForm, cmd = m.scanForm.update(msg)
	return m, cmd
}

func (m Model) submitText() (tea.Model, tea.Cmd) {
	text := m.scanForm.text.Value()
	a := m.app
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		a.Scans.SubmitText(ctx, text)
		return scanDoneMsg{}
	}
	return m, tea.Batch(run, m.scanForm.spin.Tick)
}

func (m Model) submitFile() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.scanForm.path.Value())
	if path == "" {
		return m, nil
	}

	a := m.app
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		file, err := os.Open(path)
		if err != nil {
			a.Notify.Error("Cannot open file: " + err.Error())
			return scanDoneMsg{}
		}
		defer file.Close()

		mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
		a.Scans.SubmitFile(ctx, filepath.Base(path), mediaType, file)
		return scanDoneMsg{}
	}
	return m, tea.Batch(run, m.scanForm.spin.Tick)
}

func (m Model) viewScan() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("New Scan") + "\n\n")
	b.WriteString(m.authField("Text", &m.scanForm.text, m.scanForm.text.Focused()))
	b.WriteString(m.authField("File", &m.scanForm.path, m.scanForm.path.Focused()))
	b.WriteString("\n")

	switch m.app.Scans.State() {
	case scan.StateSubmitting:
		b.WriteString(m.scanForm.spin.View() + " Analyzing...\n")

	case scan.StateSucceeded:
		b.WriteString(m.renderResult())

	case scan.StateFailed:
		b.WriteString(errorStyle.Render(m.app.Scans.ErrorMessage()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  s: edit text  f: edit file path  Enter: submit  Esc: clear"))
	return b.String()
}

func (m Model) renderResult() string {
	result := m.app.Scans.Result()
	if result == nil || result.RiskScore == nil {
		return ""
	}

	var b strings.Builder
	score := *result.RiskScore
	b.WriteString(fmt.Sprintf("Risk score  %.2f  %s\n",
		score, severityStyle(result.Severity).Render(result.Severity)))

	if exp := result.Explanation; exp != nil {
		if exp.FraudCategory != "" {
			b.WriteString("Category    " + exp.FraudCategory + "\n")
		}
		for _, signal := range exp.Signals {
			b.WriteString(dimStyle.Render("  • "+signal) + "\n")
		}
		if exp.Reasoning != "" {
			b.WriteString(dimStyle.Render(exp.Reasoning) + "\n")
		}
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}
