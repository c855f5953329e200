// Package logger provides verbose logging for the creative publisher.
// Debug, Info and Warn lines are printed to stderr only when verbose mode
// is enabled via the --verbose flag; Error lines are always printed.
// Named returns a component logger whose lines carry a "[name]" prefix.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Logger writes lines for one component.
type Logger struct {
	prefix string
}

// Named returns a logger whose lines are tagged with name.
func Named(name string) *Logger {
	if name == "" {
		return &Logger{}
	}
	return &Logger{prefix: "[" + name + "] "}
}

func (l *Logger) write(level string, always bool, format string, args []any) {
	mu.RLock()
	defer mu.RUnlock()
	if !always && !verbose {
		return
	}
	prefix := ""
	if l != nil {
		prefix = l.prefix
	}
	fmt.Fprintf(output, "["+level+"] "+prefix+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...any) { l.write("DEBUG", false, format, args) }

// Info prints an informational message if verbose mode is enabled.
func (l *Logger) Info(format string, args ...any) { l.write("INFO", false, format, args) }

// Warn prints a warning if verbose mode is enabled.
func (l *Logger) Warn(format string, args ...any) { l.write("WARN", false, format, args) }

// Error always prints.
func (l *Logger) Error(format string, args ...any) { l.write("ERROR", true, format, args) }

var root = &Logger{}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { root.Debug(format, args...) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { root.Info(format, args...) }

// Warn prints a warning if verbose mode is enabled.
func Warn(format string, args ...any) { root.Warn(format, args...) }

// Error always prints.
func Error(format string, args ...any) { root.Error(format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
