package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Glyphs drawn by the progress supervisor.
const (
	SpinnerFrames = "⡿⣟⣯⣷⣾⣽⣻⢿"
	CheckGlyph    = "✓"
	CrossGlyph    = "𐄂"
)

// Theme renders styled text. The zero value renders plain text.
type Theme struct {
	color bool

	red     lipgloss.Style
	green   lipgloss.Style
	yellow  lipgloss.Style
	blue    lipgloss.Style
	magenta lipgloss.Style
}

// NewTheme returns a theme for w. Color is enabled only when w is a terminal
// and noColor is false.
func NewTheme(w io.Writer, noColor bool) Theme {
	return newTheme(!noColor && IsTerminal(w))
}

// Plain returns a theme that never emits escape sequences.
func Plain() Theme { return newTheme(false) }

func newTheme(color bool) Theme {
	return Theme{
		color:   color,
		red:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		green:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		yellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		blue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		magenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Color reports whether the theme emits escape sequences.
func (t Theme) Color() bool { return t.color }

func (t Theme) render(s lipgloss.Style, text string) string {
	if !t.color {
		return text
	}
	return s.Render(text)
}

func (t Theme) Red(s string) string     { return t.render(t.red, s) }
func (t Theme) Green(s string) string   { return t.render(t.green, s) }
func (t Theme) Yellow(s string) string  { return t.render(t.yellow, s) }
func (t Theme) Blue(s string) string    { return t.render(t.blue, s) }
func (t Theme) Magenta(s string) string { return t.render(t.magenta, s) }

// Check returns the success glyph.
func (t Theme) Check() string { return t.Green(CheckGlyph) }

// Cross returns the failure glyph.
func (t Theme) Cross() string { return t.Red(CrossGlyph) }

// Heading announces a command: a yellow line followed by an unstyled blank
// line.
func (t Theme) Heading(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, t.Yellow(fmt.Sprintf(format, args...)))
	fmt.Fprintln(w)
}

// Success prints a green line prefixed with the success glyph.
func (t Theme) Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, t.Green(CheckGlyph+" "+fmt.Sprintf(format, args...)))
}

// Warn prints a yellow "Warning:" line.
func (t Theme) Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, t.Yellow("Warning: "+fmt.Sprintf(format, args...)))
}

// Error prints a red "Error:" line.
func (t Theme) Error(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, t.Red("Error: "+fmt.Sprintf(format, args...)))
}
