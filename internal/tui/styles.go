package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorEmerald   = lipgloss.Color("#34D399")
	colorGold      = lipgloss.Color("#FBBF24")
	colorMuted     = lipgloss.Color("#64748B")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#E2E8F0")
	colorSubtle    = lipgloss.Color("#334155")
	colorHighlight = lipgloss.Color("#5EEAD4")
)

// colorFor maps a tasbih color tag to its display color.
func colorFor(tag string) lipgloss.Color {
	if tag == "gold" {
		return colorGold
	}
	return colorEmerald
}

// Styles
var (
	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorEmerald).
				Padding(1, 2)

	// Counter readout
	countStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorEmerald).
			Align(lipgloss.Center)

	arabicStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHighlight).
			Align(lipgloss.Center)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorEmerald).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)
