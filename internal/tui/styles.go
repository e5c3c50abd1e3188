package tui

import "github.com/charmbracelet/lipgloss"

var (
	purple = lipgloss.Color("99")
	pink   = lipgloss.Color("205")
	yellow = lipgloss.Color("220")
	muted  = lipgloss.Color("245")
	red    = lipgloss.Color("196")
)

type styles struct {
	title          lipgloss.Style
	label          lipgloss.Style
	focused        lipgloss.Style
	option         lipgloss.Style
	selected       lipgloss.Style
	button         lipgloss.Style
	buttonDisabled lipgloss.Style
	spinner        lipgloss.Style
	muted          lipgloss.Style
	emptyTitle     lipgloss.Style
	errorBanner    lipgloss.Style
	help           lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:          lipgloss.NewStyle().Bold(true).Foreground(yellow).Padding(0, 1),
		label:          lipgloss.NewStyle().Foreground(muted).PaddingLeft(2),
		focused:        lipgloss.NewStyle().Bold(true).Foreground(pink),
		option:         lipgloss.NewStyle().Foreground(muted),
		selected:       lipgloss.NewStyle().Bold(true).Foreground(pink),
		button:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(pink).Padding(0, 2),
		buttonDisabled: lipgloss.NewStyle().Foreground(muted).Background(lipgloss.Color("237")).Padding(0, 2),
		spinner:        lipgloss.NewStyle().Foreground(pink),
		muted:          lipgloss.NewStyle().Foreground(purple),
		emptyTitle:     lipgloss.NewStyle().Bold(true).Foreground(yellow),
		errorBanner: lipgloss.NewStyle().
			Foreground(red).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(red).
			Padding(0, 1),
		help: lipgloss.NewStyle().Foreground(muted).Faint(true),
	}
}
