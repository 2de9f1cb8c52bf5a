// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"sync"

	"github.com/finshield/console/internal/logging"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ─── Token provider ────────────────────────────────────────────────────

// StaticTokens implements interfaces.TokenProvider with a fixed token.
type StaticTokens struct {
	Token string
}

func (s *StaticTokens) AccessToken() string { return s.Token }

// ─── Expiry listener ───────────────────────────────────────────────────

// ExpiryRecorder implements interfaces.ExpiryListener and counts calls.
type ExpiryRecorder struct {
	mu    sync.Mutex
	Count int
}

func (e *ExpiryRecorder) SessionExpired() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Count++
}

// Fired reports how many expiry notifications arrived.
func (e *ExpiryRecorder) Fired() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Count
}
