// Package ui renders pass/fail and mismatch output for the numtest
// helpers. Styling is disabled automatically when output is not an
// interactive terminal so captured test logs stay plain.
package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Status colors.
var (
	Pass  = lipgloss.Color("#00D26A") // green
	Fail  = lipgloss.Color("#FF3838") // red
	Muted = lipgloss.Color("#6B7280") // gray
	Warn  = lipgloss.Color("#FFB800") // amber
)

// Pre-configured styles for mismatch reports.
var (
	PassStyle = lipgloss.NewStyle().Foreground(Pass)

	FailStyle = lipgloss.NewStyle().Foreground(Fail).Bold(true)

	IndexStyle = lipgloss.NewStyle().Foreground(Muted)

	WarnStyle = lipgloss.NewStyle().Foreground(Warn)
)

var (
	colorOnce sync.Once
	colorOK   bool
)

// ColorTerminal reports whether stderr is an interactive terminal with
// color support. Returns false when output is piped, redirected, TERM is
// "dumb", or NO_COLOR is set.
func ColorTerminal() bool {
	colorOnce.Do(func() {
		if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
			return
		}
		if !term.IsTerminal(int(os.Stderr.Fd())) {
			return
		}
		colorOK = termenv.ColorProfile() != termenv.Ascii
	})
	return colorOK
}

// Styled applies style to s when the terminal supports color, otherwise
// returns s unchanged. Use at every call site that renders report text.
func Styled(style lipgloss.Style, s string) string {
	if !ColorTerminal() {
		return s
	}
	return style.Render(s)
}

// Icon returns unicode when the terminal supports color output (a proxy
// for glyph support), ascii otherwise: ui.Icon("✗", "x").
func Icon(unicode, ascii string) string {
	if ColorTerminal() {
		return unicode
	}
	return ascii
}
