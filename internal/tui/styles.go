package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorGreen     = lipgloss.Color("#00FF00")
	colorYellow    = lipgloss.Color("#FFFF00")
	colorRed       = lipgloss.Color("#FF0000")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	assistantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorLightGray)

	modeStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	sourceStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)
