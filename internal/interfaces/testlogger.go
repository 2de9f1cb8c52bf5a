package interfaces

import "fmt"

// TestLogger prints log lines through fmt for tests that want console
// output while debugging. Debug and Info lines only appear in verbose
// mode; warnings and errors always print.
type TestLogger struct {
	verbose bool
	prefix  string
}

// NewTestLogger creates a new test logger.
func NewTestLogger(verbose bool) *TestLogger {
	return &TestLogger{verbose: verbose}
}

func (tl *TestLogger) Debug(msg string, fields ...Field) {
	if tl.verbose {
		fmt.Printf("[DEBUG] %s%s %v\n", tl.prefix, msg, fields)
	}
}

func (tl *TestLogger) Info(msg string, fields ...Field) {
	if tl.verbose {
		fmt.Printf("[INFO] %s%s %v\n", tl.prefix, msg, fields)
	}
}

func (tl *TestLogger) Warn(msg string, fields ...Field) {
	fmt.Printf("[WARN] %s%s %v\n", tl.prefix, msg, fields)
}

func (tl *TestLogger) Error(msg string, fields ...Field) {
	fmt.Printf("[ERROR] %s%s %v\n", tl.prefix, msg, fields)
}

// With folds the fields into a line prefix so component-scoped child
// loggers stay distinguishable in test output.
func (tl *TestLogger) With(fields ...Field) Logger {
	prefix := tl.prefix
	for _, f := range fields {
		prefix += fmt.Sprintf("%s=%v ", f.Key, f.Value)
	}
	return &TestLogger{verbose: tl.verbose, prefix: prefix}
}
