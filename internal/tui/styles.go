package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	errorColor   = lipgloss.Color("196")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	cursorStyle   = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(mutedColor).Strikethrough(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	overdueStyle  = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle     = lipgloss.NewStyle().Foreground(mutedColor)
	errStyle      = lipgloss.NewStyle().Foreground(errorColor)
)
