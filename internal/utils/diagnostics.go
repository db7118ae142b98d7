package utils

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticSystem provides structured, user-friendly CLI output
type DiagnosticSystem struct {
	level    DiagnosticLevel
	output   io.Writer
	errorOut io.Writer

	headerColor  *color.Color
	errorColor   *color.Color
	warnColor    *color.Color
	infoColor    *color.Color
	successColor *color.Color
	dimColor     *color.Color
}

// NewDiagnosticSystem creates a new diagnostic system
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:        level,
		output:       os.Stdout,
		errorOut:     os.Stderr,
		headerColor:  color.New(color.FgCyan, color.Bold),
		errorColor:   color.New(color.FgRed, color.Bold),
		warnColor:    color.New(color.FgYellow),
		infoColor:    color.New(color.FgBlue),
		successColor: color.New(color.FgGreen, color.Bold),
		dimColor:     color.New(color.Faint),
	}
}

// NewQuietDiagnostics creates a diagnostic system that only shows errors
func NewQuietDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticError)
}

// NewVerboseDiagnostics creates a diagnostic system with full output
func NewVerboseDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticVerbose)
}

// SetOutput redirects both output streams, mainly for tests
func (d *DiagnosticSystem) SetOutput(out io.Writer) {
	d.output = out
	d.errorOut = out
}

// Error outputs error messages (always shown unless silent)
func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	if d.level >= DiagnosticError {
		fmt.Fprintf(d.errorOut, "%s %s\n", d.errorColor.Sprint("ERROR"), fmt.Sprintf(format, args...))
	}
}

// Warn outputs warning messages
func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	if d.level >= DiagnosticWarn {
		fmt.Fprintf(d.output, "%s  %s\n", d.warnColor.Sprint("WARN"), fmt.Sprintf(format, args...))
	}
}

// Info outputs informational messages
func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s  %s\n", d.infoColor.Sprint("INFO"), fmt.Sprintf(format, args...))
	}
}

// Success outputs success messages with emphasis
func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s %s\n", d.successColor.Sprint("OK"), fmt.Sprintf(format, args...))
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	if d.level >= DiagnosticVerbose {
		fmt.Fprintf(d.output, "%s %s\n", d.dimColor.Sprint("..."), fmt.Sprintf(format, args...))
	}
}

// Debug outputs debug messages (debug mode only)
func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	if d.level >= DiagnosticDebug {
		fmt.Fprintf(d.output, "%s %s\n", d.dimColor.Sprint("DBG"), fmt.Sprintf(format, args...))
	}
}

// Section prints a prominent section header
func (d *DiagnosticSystem) Section(title string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "\n%s\n", d.headerColor.Sprintf("=== %s ===", title))
	}
}

// Subsection prints a smaller section header
func (d *DiagnosticSystem) Subsection(title string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "\n%s\n", d.headerColor.Sprintf("--- %s ---", title))
	}
}

// List prints an indented list entry
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "  • %s\n", fmt.Sprintf(format, args...))
	}
}

// Summary prints a titled block of name/value statistics
func (d *DiagnosticSystem) Summary(title string, stats map[string]interface{}) {
	if d.level < DiagnosticInfo {
		return
	}

	d.Section(title)

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(d.output, "  %-24s %v\n", key+":", stats[key])
	}
}
