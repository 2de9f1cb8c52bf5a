package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/finshield/console/internal/gateway"
)

// Config aggregates the runtime configuration for the console. We
// intentionally keep this small — add more fields as wiring requires them.
type Config struct {
	// GatewayCfg configures requests against the analysis service.
	GatewayCfg gateway.Config

	// StorePath is where the local console database lives.
	StorePath string

	// ToastTTL is the notification auto-dismiss duration.
	ToastTTL time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		GatewayCfg: gateway.Config{
			BaseURL: "http://127.0.0.1:8000",
			Timeout: 30 * time.Second,
		},
		StorePath: defaultStorePath(),
		ToastTTL:  3500 * time.Millisecond,
	}
}

func defaultStorePath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "finshield", "console.db")
	}
	return filepath.Join(base, "finshield", "console.db")
}
