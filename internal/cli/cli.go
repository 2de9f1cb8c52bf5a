package cli

import (
	"flag"
	"fmt"
	"strings"
)

// CLIArgs are the command-line arguments that control one console run.
// Keep this small for now — add fields as modules need them.
type CLIArgs struct {
	// Server is the analysis service origin.
	Server string

	// DataPath overrides the local store location; empty means the
	// default under the user config directory.
	DataPath string

	// LogPath redirects structured logs to a file; empty means stderr.
	LogPath string

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by
// passing arbitrary slices. The function is deterministic and does not
// read os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("finshield-console", flag.ContinueOnError)
	var (
		server   = fs.String("server", "http://127.0.0.1:8000", "Analysis service origin")
		dataPath = fs.String("data", "", "Local store path (default: user config dir)")
		logPath  = fs.String("log", "", "Log file path (default: stderr)")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(nil)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if strings.TrimSpace(*server) == "" {
		return nil, fmt.Errorf("missing required -server argument")
	}

	return &CLIArgs{
		Server:   *server,
		DataPath: *dataPath,
		LogPath:  *logPath,
		RawArgs:  args,
	}, nil
}
