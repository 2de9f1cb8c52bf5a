package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/finshield/console/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("25")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("25")).
			Padding(0, 2)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)

	toastSuccessStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("42")).
				Padding(0, 1)

	toastErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("203")).
			Padding(0, 1)

	severityCritical = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201"))
	severityHigh     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	severityMedium   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	severityLow      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func severityStyle(severity string) lipgloss.Style {
	switch severity {
	case model.SeverityCritical:
		return severityCritical
	case model.SeverityHigh:
		return severityHigh
	case model.SeverityMedium:
		return severityMedium
	}
	return severityLow
}
