package errors

import "github.com/fatih/color"

// Color names the fixed semantic palette spec.md §4.5/§6 and
// original_source/compiler/zhoo-util/src/color.rs both describe: each
// diagnostic part always renders in the same color regardless of which
// report produced it.
type Color int

const (
	ColorError Color = iota
	ColorWarning
	ColorHelp
	ColorNote
	ColorTitle
	ColorHint
)

// attr returns the fatih/color attribute backing one semantic color. The
// RGB values mirror color.rs's fixed palette (error red, warning/help
// yellow, note cyan-blue, title blue, hint green) mapped onto the
// nearest terminal-safe ANSI color, since fatih/color's basic palette is
// 16-color rather than true-color.
func (c Color) attr() *color.Color {
	switch c {
	case ColorError:
		return color.New(color.FgRed, color.Bold)
	case ColorWarning, ColorHelp:
		return color.New(color.FgYellow)
	case ColorNote:
		return color.New(color.FgCyan)
	case ColorTitle:
		return color.New(color.FgBlue, color.Bold)
	case ColorHint:
		return color.New(color.FgGreen)
	default:
		return color.New()
	}
}

// Sprint colors text using c's attribute, honoring the color package's
// global NoColor switch (set from isatty detection in reporter.go).
func (c Color) Sprint(s string) string {
	return c.attr().Sprint(s)
}

// noColor disables fatih/color globally, used when stderr is not a
// terminal.
func noColor() {
	color.NoColor = true
}
