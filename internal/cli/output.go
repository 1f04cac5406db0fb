package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// Colour modes accepted by SetColorMode.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// colorEnabled tracks whether color output is enabled.
// It starts from terminal detection and is overridden by SetColorMode.
var colorEnabled = IsTerminal(os.Stdout)

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// SetColorMode applies a configured colour mode. In auto mode colours follow
// whether w is a terminal.
func SetColorMode(mode string, w io.Writer) error {
	switch mode {
	case ColorAuto, "":
		colorEnabled = IsTerminal(w)
	case ColorAlways:
		colorEnabled = true
	case ColorNever:
		colorEnabled = false
	default:
		return &ValidationError{Field: "color", Message: fmt.Sprintf("unknown mode %q (want auto, always or never)", mode)}
	}
	return nil
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// IsInputTerminal returns true if r is a terminal.
func IsInputTerminal(r io.Reader) bool {
	if f, ok := r.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// ClearScreen clears w when it is a terminal and does nothing otherwise.
func ClearScreen(w io.Writer) {
	if IsTerminal(w) {
		fmt.Fprint(w, "\033[H\033[2J")
	}
}

func wrap(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string {
	return wrap(colorGreen, s)
}

// Red returns s wrapped in red ANSI codes if colors are enabled.
func Red(s string) string {
	return wrap(colorRed, s)
}

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func Yellow(s string) string {
	return wrap(colorYellow, s)
}

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string {
	return wrap(colorGray, s)
}

// Bold returns s wrapped in bold ANSI codes if colors are enabled.
func Bold(s string) string {
	return wrap(colorBold, s)
}
