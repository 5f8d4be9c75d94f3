// Package tui provides the interactive terminal UI for htsmail.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, failures
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - section headers
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - selection
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - success
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBgAlt     = lipgloss.Color("#2d3436") // Alt background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

// Sidebar styles
var (
	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderRight(true).
			BorderForeground(ColorBorder).
			Padding(1, 1)

	SidebarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Background(ColorBg).
				Padding(0, 1).
				MarginBottom(1)

	SidebarItemStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	SidebarItemActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorBgAlt).
				Padding(0, 1)

	SidebarHelpStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				MarginTop(1).
				Padding(0, 1)
)

// Pane styles
var (
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

// Status styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Italic(true)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)
)

// Emphasis styles mirror the document's red and bold runs.
var (
	RedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	RedBoldStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

// ContentStyle pads the main area.
var ContentStyle = lipgloss.NewStyle().
	Padding(0, 1)

// logLineStyle colors a progress message by its marker.
func logLineStyle(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "✅"):
		return SuccessStyle
	case strings.HasPrefix(line, "❌"):
		return ErrorStyle
	default:
		return TextStyle
	}
}
