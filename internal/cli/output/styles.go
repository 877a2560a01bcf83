package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by text output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Table       lipgloss.Style
	Placeholder lipgloss.Style
	Column      lipgloss.Style
	Arrow       lipgloss.Style
}

// NewStyles builds styles bound to the given lipgloss renderer.
func NewStyles(lg *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Header2: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:    lg.NewStyle().Bold(true),
		Muted:   lg.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lg.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lg.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lg.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Info:    lg.NewStyle().Foreground(lipgloss.Color("12")),

		Table:       lg.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Placeholder: lg.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Column:      lg.NewStyle().Foreground(lipgloss.Color("6")),
		Arrow:       lg.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
