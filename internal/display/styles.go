package display

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dim    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	green  = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	red    = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
)

// styles groups the lipgloss styles bound to one renderer.
type styles struct {
	label lipgloss.Style
	name  lipgloss.Style
	phone lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
}

func newStyles(re *lipgloss.Renderer) styles {
	return styles{
		label: re.NewStyle().Foreground(dim),
		name:  re.NewStyle().Bold(true).Foreground(accent),
		phone: re.NewStyle().Foreground(green),
		ok:    re.NewStyle().Foreground(green),
		err:   re.NewStyle().Bold(true).Foreground(red),
	}
}
