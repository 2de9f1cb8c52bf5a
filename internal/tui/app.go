// Package tui is the terminal front end of the console. It renders the
// views, routes key input and runs the core operations on the shared
// Application; all fraud-analysis state lives in the core packages, the
// TUI only reads it back each frame.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finshield/console/internal/app"
	"github.com/finshield/console/internal/guard"
	"github.com/finshield/console/internal/model"
	"github.com/finshield/console/internal/notify"
	"github.com/finshield/console/internal/scan"
)

// requestTimeout bounds every operation started from the TUI.
const requestTimeout = 60 * time.Second

type view int

const (
	viewAuth view = iota
	viewDashboard
)

type tab int

const (
	tabOverview tab = iota
	tabScan
	tabHistory
	tabCount
)

// Messages produced by async commands.
type (
	authDoneMsg    struct{ err error }
	scanDoneMsg    struct{}
	refreshDoneMsg struct{}
	intelMsg       struct {
		status  *model.IntelStatus
		profile *model.Profile
	}
	frameMsg       time.Time
)

// Model is the bubbletea model for the whole console.
type Model struct {
	app *app.Application

	view   view
	tab    tab
	width  int
	height int

	auth     authForm
	scanForm scanForm

	intel    *model.IntelStatus
	profile  *model.Profile
	quitting bool
}

// NewModel builds the initial model. The session was restored before the
// program starts, so the route guard can decide the first view here.
func NewModel(a *app.Application) Model {
	m := Model{
		app:      a,
		auth:     newAuthForm(),
		scanForm: newScanForm(),
		width:    100,
		height:   30,
	}

	if a.Guard.Protected() == guard.Render {
		m.view = viewDashboard
	} else {
		m.view = viewAuth
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameTick()}
	if m.view == viewDashboard {
		cmds = append(cmds, m.refreshCmd(), m.intelCmd())
	} else {
		cmds = append(cmds, m.auth.focusCmd())
	}
	return tea.Batch(cmds...)
}

// frameTick re-renders twice a second so toast expiry and submission
// state changes show up without user input.
func frameTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		return m, frameTick()

	case authDoneMsg:
		m.auth.busy = false
		if msg.err != nil {
			m.auth.errMsg = msg.err.Error()
			return m, nil
		}
		m.auth = newAuthForm()
		m.view = viewDashboard
		m.tab = tabOverview
		return m, tea.Batch(m.refreshCmd(), m.intelCmd())

	case scanDoneMsg:
		// Result and toast are read from the core on render.
		return m, nil

	case refreshDoneMsg:
		return m, nil

	case intelMsg:
		if msg.status != nil {
			m.intel = msg.status
		}
		if msg.profile != nil {
			m.profile = msg.profile
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.scanForm.spin, cmd = m.scanForm.spin.Update(msg)
		if m.app.Scans.State() == scan.StateSubmitting {
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.view {
		case viewAuth:
			return m.updateAuth(msg)
		case viewDashboard:
			return m.updateDashboard(msg)
		}
	}

	// Forward everything else (cursor blinks etc.) to the focused input.
	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewAuth:
		var cmd tea.Cmd
		m.auth, cmd = m.auth.update(msg)
		return m, cmd
	case viewDashboard:
		if m.tab == tabScan {
			var cmd tea.Cmd
			m.scanForm, cmd = m.scanForm.update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Tab-local text entry swallows most keys.
	if m.tab == tabScan && m.scanForm.capturing() {
		return m.updateScan(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.tab = (m.tab + 1) % tabCount
		return m.enterTab()

	case "shift+tab":
		m.tab = (m.tab - 1 + tabCount) % tabCount
		return m.enterTab()

	case "1":
		m.tab = tabOverview
		return m.enterTab()

	case "2":
		m.tab = tabScan
		return m.enterTab()

	case "3":
		m.tab = tabHistory
		return m.enterTab()

	case "ctrl+l":
		// Logout resets the core stores through the session hook; the
		// model-local overview caches go with them.
		m.app.Sessions.Logout()
		m.intel = nil
		m.profile = nil
		m.scanForm = newScanForm()
		m.view = viewAuth
		m.auth = newAuthForm()
		return m, m.auth.focusCmd()

	case "r":
		return m, m.refreshCmd()
	}

	switch m.tab {
	case tabScan:
		return m.updateScan(msg)
	case tabHistory:
		return m.updateHistory(msg)
	}
	return m, nil
}

func (m Model) enterTab() (tea.Model, tea.Cmd) {
	switch m.tab {
	case tabScan:
		return m, m.scanForm.focusCmd()
	case tabOverview:
		return m, m.intelCmd()
	}
	return m, nil
}

// ─── Async commands ───

func (m Model) refreshCmd() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		a.History.Refresh(ctx)
		return refreshDoneMsg{}
	}
}

// intelCmd refreshes the overview's side feeds. Either fetch may fail
// independently; the view just keeps the last good value.
func (m Model) intelCmd() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var msg intelMsg
		if status, err := a.Intel.Status(ctx); err == nil {
			msg.status = status
		}
		if profile, err := a.Intel.Profile(ctx); err == nil {
			msg.profile = profile
		}
		return msg
	}
}

// ─── Rendering ───

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewAuth:
		return m.viewAuth()
	default:
		return m.viewDashboard()
	}
}

func (m Model) viewDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderTopBar())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabOverview:
		b.WriteString(m.viewOverview())
	case tabScan:
		b.WriteString(m.viewScan())
	case tabHistory:
		b.WriteString(m.viewHistory())
	}

	b.WriteString("\n")
	b.WriteString(m.renderToast())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  1/2/3: tabs  r: refresh  ctrl+l: sign out  q: quit"))
	return b.String()
}

func (m Model) renderTopBar() string {
	title := titleStyle.Render("FinShield Console")
	who := ""
	if u := m.app.Sessions.CurrentUser(); u != nil {
		who = dimStyle.Render("  " + u.Username + " <" + u.Email + ">")
	}
	return title + who
}

func (m Model) renderTabs() string {
	labels := []string{"Overview", "Scan", "History"}
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		if tab(i) == m.tab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// renderToast shows the single notification slot, or an empty line to
// keep the layout stable.
func (m Model) renderToast() string {
	toast := m.app.Notify.Current()
	if toast == nil {
		return ""
	}
	if toast.Kind == notify.KindError {
		return toastErrorStyle.Render(toast.Message)
	}
	return toastSuccessStyle.Render(toast.Message)
}
