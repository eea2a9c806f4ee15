package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// User-facing output functions with status glyphs.
// These write to stdout/stderr directly for CLI output,
// separate from the structured debug logging.

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

var (
	userOut io.Writer = os.Stdout
	userErr io.Writer = os.Stderr
)

// SetUserOutput redirects user output. Tests use it to capture messages.
func SetUserOutput(out, errOut io.Writer) {
	userOut = out
	userErr = errOut
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	userPrint(userOut, infoStyle, "ℹ", format, args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	userPrint(userOut, successStyle, "✓", format, args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	userPrint(userErr, warningStyle, "⚠", format, args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	userPrint(userErr, errorStyle, "✗", format, args...)
}

// UserHeading prints a section title to stdout.
func UserHeading(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	if IsTerminal(userOut) {
		text = headingStyle.Render(text)
	}
	fmt.Fprintln(userOut, text)
}

func userPrint(w io.Writer, style lipgloss.Style, glyph, format string, args ...interface{}) {
	if IsTerminal(w) {
		glyph = style.Render(glyph)
	}
	fmt.Fprintf(w, "%s %s\n", glyph, fmt.Sprintf(format, args...))
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
