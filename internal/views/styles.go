// Package views renders the pipeline, debate, and trade panels for the
// terminal dashboard.
package views

import "github.com/charmbracelet/lipgloss"

var (
	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#334155")).
		Padding(0, 1)

	highlightPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F59E0B")).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	pendingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	runningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)

	completeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	flaggedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	bullStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	bearStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))

	mutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#94A3B8"))

	outputStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CBD5E1")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color("#475569")).
		PaddingLeft(1).
		MarginLeft(2)

	chipStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("#1E293B")).
		Foreground(lipgloss.Color("#E2E8F0")).
		Padding(0, 1)
)
