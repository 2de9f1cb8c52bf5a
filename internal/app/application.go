// Package app wires the console's components together: local store,
// session manager, gateway, notification center, orchestrator and stores.
// Pass Application into modules that need shared state rather than using
// package-level variables.
package app

import (
	"errors"

	"github.com/finshield/console/internal/auth"
	"github.com/finshield/console/internal/cli"
	"github.com/finshield/console/internal/gateway"
	"github.com/finshield/console/internal/guard"
	"github.com/finshield/console/internal/history"
	"github.com/finshield/console/internal/intel"
	"github.com/finshield/console/internal/localstore"
	"github.com/finshield/console/internal/logging"
	"github.com/finshield/console/internal/notify"
	"github.com/finshield/console/internal/scan"
	"github.com/finshield/console/internal/session"
)

// Application is the global runtime state container.
type Application struct {
	Config *Config
	Args   *cli.CLIArgs
	Logger logging.Logger

	Store    *localstore.Store
	Sessions *session.Manager
	Guard    *guard.Guard
	Gateway  *gateway.Gateway
	Auth     *auth.Client
	Notify   *notify.Center
	History  *history.Store
	Scans    *scan.Orchestrator
	Intel    *intel.Client
}

// NewApplication constructs and wires the console. The session is restored
// synchronously here, before the route guard can make its first decision.
func NewApplication(cfg *Config, args *cli.CLIArgs, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if args != nil {
		if args.Server != "" {
			cfg.GatewayCfg.BaseURL = args.Server
		}
		if args.DataPath != "" {
			cfg.StorePath = args.DataPath
		}
	}

	store, err := localstore.Open(cfg.StorePath, logger)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(store, logger)
	notifier := notify.NewCenter(cfg.ToastTTL)

	// The expiry side channel feeds the notification center; the session
	// itself is never cleared on 401.
	gw := gateway.New(cfg.GatewayCfg, sessions, notifier, logger, nil)

	hist := history.NewStore(gw, logger)
	orch := scan.NewOrchestrator(gw, hist, notifier, store, logger)

	// Logout is a full reset, not an in-place patch: every store that
	// could still render the previous user's data is dropped.
	sessions.SetLogoutHook(func() {
		orch.Reset()
		hist.Reset()
		notifier.Dismiss()
	})

	a := &Application{
		Config:   cfg,
		Args:     args,
		Logger:   logger,
		Store:    store,
		Sessions: sessions,
		Guard:    guard.New(sessions),
		Gateway:  gw,
		Auth:     auth.NewClient(gw, sessions, logger),
		Notify:   notifier,
		History:  hist,
		Scans:    orch,
		Intel:    intel.NewClient(gw, logger),
	}

	sessions.Restore()
	return a, nil
}

// Close releases the application's resources.
func (a *Application) Close() error {
	if a == nil {
		return errors.New("application is nil")
	}
	if a.Logger != nil {
		a.Logger.Info("application shutdown")
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
