package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f5c800")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f46251")).Bold(true)
	tipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ccbf1"))
	stepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4dca7d")).Bold(true)
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConfigureColors drops colors when stdout is not a terminal, e.g. when git
// captures the output of a hook or an exec line.
func ConfigureColors() {
	if !isTerminal(os.Stdout) || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// WarnPrefix is prepended to warnings.
func WarnPrefix() string {
	return warnStyle.Render("⚠️ ") + " "
}

// ErrorPrefix is prepended to errors.
func ErrorPrefix() string {
	return errorStyle.Render("❌") + " "
}

// TipPrefix is prepended to tips.
func TipPrefix() string {
	return tipStyle.Render("💡") + " "
}

// Step highlights a step number in console messages.
func Step(number string) string {
	return stepStyle.Render("Step " + number)
}
