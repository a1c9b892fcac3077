package cli

import "github.com/charmbracelet/lipgloss"

// Colors used in command output.
var (
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorError   = lipgloss.Color("#EF4444") // Red
	colorMuted   = lipgloss.Color("#9CA3AF") // Light gray
)

// Styles for result lines.
var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
)

// successMark returns the marker prefixing successful result lines.
func successMark() string {
	return styleSuccess.Render("✓")
}

// failureMark returns the marker prefixing failed result lines.
func failureMark() string {
	return styleError.Render("✗")
}
