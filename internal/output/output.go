// Package output provides styled terminal output and the shared logger for ez.
//
// User-facing results (generated files, next steps) go to stdout through the
// lipgloss helpers. Diagnostics go to stderr through a charmbracelet/log
// logger whose level follows the --verbose flag.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	stdout io.Writer = os.Stdout

	// Logger is the process-wide diagnostic logger.
	Logger = newLogger(os.Stderr, false)
)

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		ReportCaller:    false,
		TimeFormat:      "15:04:05",
	})
}

// SetupLogging configures the logger based on verbosity.
// This should be called by the CLI when the --verbose flag is parsed.
func SetupLogging(verbose bool) {
	Logger = newLogger(os.Stderr, verbose)
}

// SetOutput redirects the styled stdout helpers. Passing nil restores os.Stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	stdout = w
}

// Writer returns the writer used by the styled helpers.
func Writer() io.Writer {
	return stdout
}

// Success prints a success message in green.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Generated: output/Customer/Controllers/CustomerController.cs")
func Success(msg string) {
	fmt.Fprintln(stdout, successStyle.Render("✓ "+msg))
}

// Error prints an error message in red.
func Error(msg string) {
	fmt.Fprintln(stdout, errorStyle.Render("✗ "+msg))
}

// Warn prints a warning that the run continued past.
func Warn(msg string) {
	fmt.Fprintln(stdout, warnStyle.Render("! "+msg))
}

// Info prints an informational message in cyan.
func Info(msg string) {
	fmt.Fprintln(stdout, infoStyle.Render(msg))
}

// Step prints an indented step message in gray.
//
// Example:
//
//	output.Step("dotnet build")
func Step(msg string) {
	fmt.Fprintln(stdout, stepStyle.Render("   "+msg))
}

// Debug logs a debug message with structured key/value pairs.
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Warnf logs a warning through the logger.
func Warnf(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
}
