package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles used for console output. It is a plain value;
// build one per writer.
type Theme struct {
	Name    lipgloss.Style
	Oldest  lipgloss.Style
	Summary lipgloss.Style
	Error   lipgloss.Style
}

// NewTheme builds the default theme for the terminal behind w.
func NewTheme(w io.Writer, opts ...termenv.OutputOption) Theme {
	r := lipgloss.NewRenderer(w, opts...)
	return Theme{
		Name:    r.NewStyle().Foreground(lipgloss.Color("2")),
		Oldest:  r.NewStyle().Foreground(lipgloss.Color("2")).Underline(true),
		Summary: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// PlainTheme renders every style without escape codes.
func PlainTheme(w io.Writer) Theme {
	return NewTheme(w, termenv.WithProfile(termenv.Ascii))
}
