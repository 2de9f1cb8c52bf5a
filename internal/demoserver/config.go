package demoserver

import "time"

// Config holds configuration for the demo analysis server.
type Config struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// DBPath is the SQLite database location. ":memory:" works for tests.
	DBPath string

	// JWTSecret signs access and refresh tokens. The default is fine for
	// a demo; override it for anything shared.
	JWTSecret string

	// AccessTTL and RefreshTTL bound token lifetimes.
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// DefaultConfig returns a Config with sensible demo defaults.
func DefaultConfig() Config {
	return Config{
		Addr:       ":8000",
		DBPath:     "finshield-demo.db",
		JWTSecret:  "finshield-demo-secret",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}
