// Package tui renders exrate screens for the terminal and runs the
// interactive setup wizard and calculator.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary   = lipgloss.AdaptiveColor{Light: "#4894FE", Dark: "#D67A7A"}
	secondary = lipgloss.AdaptiveColor{Light: "#EFF7FF", Dark: "#FCE3E3"}
	subtle    = lipgloss.AdaptiveColor{Light: "#5D6166", Dark: "#AEB5BF"}
	border    = lipgloss.AdaptiveColor{Light: "#EFF7FF", Dark: "#3F3F3F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(secondary).
			Background(primary).
			Padding(0, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginTop(1)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)

	codeStyle     = lipgloss.NewStyle().Bold(true).Width(5)
	rateStyle     = lipgloss.NewStyle().Foreground(primary)
	selectedStyle = lipgloss.NewStyle().Foreground(primary).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(subtle)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D64545", Dark: "#FF8A8A"})

	displayStyle = lipgloss.NewStyle().Bold(true).Width(28).Align(lipgloss.Right)
)
