package tui

import (
	"github.com/charmbracelet/lipgloss"

	"portfolio-chat/internal/domain"
)

type palette struct {
	glamourStyle string

	title  lipgloss.Style
	dim    lipgloss.Style
	user   lipgloss.Style
	ai     lipgloss.Style
	status lipgloss.Style
	help   lipgloss.Style
	modal  lipgloss.Style
	label  lipgloss.Style
}

var darkPalette = palette{
	glamourStyle: "dark",

	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Padding(0, 1),
	dim: lipgloss.NewStyle().
		Foreground(lipgloss.Color("242")),
	user: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214")),
	ai: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("42")),
	status: lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1),
	help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")),
	modal: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(1, 3),
	label: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),
}

var lightPalette = palette{
	glamourStyle: "light",

	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("25")).
		Padding(0, 1),
	dim: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),
	user: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("166")),
	ai: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("28")),
	status: lipgloss.NewStyle().
		Background(lipgloss.Color("254")).
		Foreground(lipgloss.Color("235")).
		Padding(0, 1),
	help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")),
	modal: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("25")).
		Padding(1, 3),
	label: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),
}

func paletteFor(theme string) palette {
	if theme == domain.ThemeLight {
		return lightPalette
	}
	return darkPalette
}
