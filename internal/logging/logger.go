// Package logging provides leveled, colored console logging for addonbump.
//
// Informational and success messages go to stdout, warnings, errors and debug
// output go to stderr. Both streams share one level so a single --log-level
// flag controls the whole tool.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	stdoutLogger = newLogger(os.Stdout)
	stderrLogger = newLogger(os.Stderr)

	// successLogger shares stdoutLogger's destination but renders INFO as SUCCESS.
	successLogger = newSuccessLogger(os.Stdout)
)

// Levels lists the accepted level names in increasing severity.
var Levels = []string{"DEBUG", "INFO", "WARN", "ERROR"}

func levelStyles() *log.Styles {
	styles := log.DefaultStyles()

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("#7F6DFF"))
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("#42E7FF"))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("#FFE763"))
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("#FF4473"))

	return styles
}

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{ReportTimestamp: false})
	l.SetStyles(levelStyles())
	return l
}

func newSuccessLogger(w io.Writer) *log.Logger {
	styles := levelStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("SUCCESS").
		Foreground(lipgloss.Color("#60F281"))

	l := log.NewWithOptions(w, log.Options{ReportTimestamp: false})
	l.SetStyles(styles)
	return l
}

// Info logs progress messages to stdout.
func Info(format string, v ...any) {
	stdoutLogger.Info(fmt.Sprintf(format, v...))
}

// Success logs a completed step to stdout, honoring INFO filtering.
func Success(format string, v ...any) {
	successLogger.Info(fmt.Sprintf(format, v...))
}

// Warn logs non-fatal problems to stderr.
func Warn(format string, v ...any) {
	stderrLogger.Warn(fmt.Sprintf(format, v...))
}

// Error logs failures to stderr.
func Error(format string, v ...any) {
	stderrLogger.Error(fmt.Sprintf(format, v...))
}

// Debug logs diagnostic detail to stderr.
func Debug(format string, v ...any) {
	stderrLogger.Debug(fmt.Sprintf(format, v...))
}

// ParseLevel maps a level name (case-insensitive) to a log level.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return log.DebugLevel, nil
	case "INFO", "":
		return log.InfoLevel, nil
	case "WARN", "WARNING":
		return log.WarnLevel, nil
	case "ERROR":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q (want one of %s)", level, strings.Join(Levels, ", "))
	}
}

// SetLevel sets the minimum level for all loggers. Unknown names fall back to INFO.
func SetLevel(level string) {
	lvl, _ := ParseLevel(level)
	stdoutLogger.SetLevel(lvl)
	stderrLogger.SetLevel(lvl)
	successLogger.SetLevel(lvl)
}

// SetOutput redirects the stdout and stderr streams. A nil writer discards
// that stream. The current level is preserved.
func SetOutput(stdout, stderr io.Writer) {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	lvl := stdoutLogger.GetLevel()
	stdoutLogger = newLogger(stdout)
	stderrLogger = newLogger(stderr)
	successLogger = newSuccessLogger(stdout)
	stdoutLogger.SetLevel(lvl)
	stderrLogger.SetLevel(lvl)
	successLogger.SetLevel(lvl)
}

// Reset restores the default stdout/stderr destinations at INFO level.
func Reset() {
	SetOutput(os.Stdout, os.Stderr)
	SetLevel("INFO")
}
