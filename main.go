// Command finshield-console is the terminal client for the FinShield
// fraud-analysis service.
// Usage: finshield-console [-server URL] [-data PATH] [-log PATH]
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/finshield/console/internal/app"
	"github.com/finshield/console/internal/cli"
	"github.com/finshield/console/internal/logging"
	"github.com/finshield/console/internal/tui"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "finshield-console: %v\n", err)
		os.Exit(2)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if args.LogPath != "" {
		file, err := os.OpenFile(args.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "finshield-console: opening log file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}
	logger := logging.NewWriterLogger("Console", out)

	application, err := app.NewApplication(nil, args, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "finshield-console: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	program := tea.NewProgram(tui.NewModel(application), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "finshield-console: %v\n", err)
		os.Exit(1)
	}
}
