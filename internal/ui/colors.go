package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	accent  = "#7D56F4"
	success = "#04B575"
	failure = "#FF5F5F"
	caution = "#FFA500"
	muted   = "#626262"
)

var styles = newPalette()

// Palette holds the styles shared by the form views.
type Palette struct {
	title  lipgloss.Style
	label  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
	help   lipgloss.Style
	result lipgloss.Style // bordered panel around a finished upload
}

func newPalette() *Palette {
	return &Palette{
		title:  bold(accent).MarginBottom(1),
		label:  bold(accent),
		ok:     bold(success),
		err:    bold(failure),
		warn:   fg(caution),
		help:   fg(muted).Italic(true),
		result: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(success)).Padding(0, 1),
	}
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func bold(color string) lipgloss.Style {
	return fg(color).Bold(true)
}
