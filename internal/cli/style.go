package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// stdoutIsTTY gates styling so piped output stays plain.
var stdoutIsTTY = term.IsTerminal(int(os.Stdout.Fd()))

var (
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")).Bold(true)
	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	idStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")).Italic(true)
)

// render applies a style only when stdout is a terminal.
func render(s lipgloss.Style, text string) string {
	if !stdoutIsTTY {
		return text
	}
	return s.Render(text)
}
