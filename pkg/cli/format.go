// Package cli provides shared console helpers for mistctl: ANSI colors,
// tabular output, interactive prompts, and batch progress reporting.
package cli

import (
	"os"
	"strings"
)

// colorEnabled is false when NO_COLOR env var is set (per no-color.org).
var colorEnabled = os.Getenv("NO_COLOR") == ""

func wrap(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + "\033[0m"
}

// Green wraps s in ANSI green. Returns s unchanged when NO_COLOR is set.
func Green(s string) string { return wrap("\033[32m", s) }

// Yellow wraps s in ANSI yellow. Returns s unchanged when NO_COLOR is set.
func Yellow(s string) string { return wrap("\033[33m", s) }

// Red wraps s in ANSI red. Returns s unchanged when NO_COLOR is set.
func Red(s string) string { return wrap("\033[31m", s) }

// Bold wraps s in ANSI bold. Returns s unchanged when NO_COLOR is set.
func Bold(s string) string { return wrap("\033[1m", s) }

// Dim wraps s in ANSI dim. Returns s unchanged when NO_COLOR is set.
func Dim(s string) string { return wrap("\033[2m", s) }

// CheckMark returns a green U+2714.
func CheckMark() string { return Green("✔") }

// CrossMark returns a red U+2716.
func CrossMark() string { return Red("✖") }

// Center centers s in a field of the given width, padded with fill runes.
// The classic section banner: Center(" Retrieving Gateways ", 80, '-').
func Center(s string, width int, fill rune) string {
	if len(s) >= width {
		return s
	}
	pad := width - len(s)
	left := pad / 2
	right := pad - left
	return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), right)
}

// DotPad pads name with dots to the given width.
// Example: DotPad("Processing device 1a2b", 30) → "Processing device 1a2b ......."
func DotPad(name string, width int) string {
	if width <= 0 || len(name) >= width-1 {
		return name
	}
	dots := width - len(name) - 1
	return name + " " + strings.Repeat(".", dots)
}
