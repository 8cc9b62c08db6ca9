package browse

import "github.com/charmbracelet/lipgloss"

// minListWidth is the minimum character width for the contact list pane.
const minListWidth = 24

var (
	listBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
	detailBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})
	nameText   = lipgloss.NewStyle().Bold(true)
	mutedText  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	statusText = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})
)

// paneWidths splits a total width: the list gets a third (at least
// minListWidth), the detail pane the rest.
func paneWidths(total int) (list, detail int) {
	if total <= 0 {
		return 0, 0
	}
	list = total / 3
	if list < minListWidth {
		list = minListWidth
	}
	detail = total - list
	if detail < 0 {
		detail = 0
	}
	return list, detail
}
