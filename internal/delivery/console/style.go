package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles renders plain text when the writer is not a terminal.
type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	renderer := lipgloss.NewRenderer(w)

	return styles{
		title:   renderer.NewStyle().Bold(true),
		success: renderer.NewStyle().Foreground(lipgloss.Color("10")),
		warning: renderer.NewStyle().Foreground(lipgloss.Color("11")),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("9")),
		muted:   renderer.NewStyle().Faint(true),
	}
}
