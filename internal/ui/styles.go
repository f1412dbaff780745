package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	rowNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(8)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	currentStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("220"))

	doneStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	markedRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	flamStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213"))

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("220"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	notifyInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	notifyWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	notifyErrorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("196"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)
