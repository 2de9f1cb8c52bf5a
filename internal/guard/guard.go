// Package guard gates navigation between the public (login/signup) and
// protected (dashboard) views. Both variants hold a neutral loading state
// while session restoration is pending, which prevents a flash of
// protected content and keeps an authenticated user out of the login form.
package guard

import "github.com/finshield/console/internal/session"

// Decision is the guard's answer for a view: render it, redirect, or wait.
type Decision int

const (
	// Loading means session restoration has not settled yet; show a
	// neutral indicator and decide later.
	Loading Decision = iota

	// Render means the requested view may be shown.
	Render

	// RedirectLogin sends the user to the public login entry point.
	RedirectLogin

	// RedirectDashboard sends an already-authenticated user away from a
	// public page.
	RedirectDashboard
)

// Guard resolves route decisions from explicit session state.
type Guard struct {
	sessions *session.Manager
}

func New(sessions *session.Manager) *Guard {
	return &Guard{sessions: sessions}
}

// Protected gates the dashboard. A missing user alone does not redirect:
// if a persisted token exists the session may still be usable, and the
// dashboard's own calls will surface expiry through the gateway.
func (g *Guard) Protected() Decision {
	if g.sessions.Loading() {
		return Loading
	}
	if !g.sessions.Authenticated() && !g.sessions.HasPersistedToken() {
		return RedirectLogin
	}
	return Render
}

// Public gates login/signup, the symmetric variant.
func (g *Guard) Public() Decision {
	if g.sessions.Loading() {
		return Loading
	}
	if g.sessions.Authenticated() {
		return RedirectDashboard
	}
	return Render
}
