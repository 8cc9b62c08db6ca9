// Package browse implements an interactive Bubble Tea view over an address
// book: a contact list beside the selected contact's phones.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/addressbook/internal/book"
)

// CursorMarker is the prefix shown on the selected contact row.
const CursorMarker = "▸ "

// Model is the Bubble Tea model for browsing a book.
type Model struct {
	book     *book.Book
	names    []string
	cursor   int
	keys     keyMap
	help     help.Model
	width    int
	height   int
	status   string
	quitting bool
}

// New creates a Model over b with the cursor on the first contact.
func New(b *book.Book) Model {
	return Model{
		book:  b,
		names: b.Names(),
		keys:  defaultKeys(),
		help:  help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if len(m.names) > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = len(m.names) - 1
				}
			}
		case key.Matches(msg, m.keys.Down):
			if len(m.names) > 0 {
				m.cursor++
				if m.cursor >= len(m.names) {
					m.cursor = 0
				}
			}
		case key.Matches(msg, m.keys.Delete):
			m = m.deleteSelected()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// deleteSelected removes the contact under the cursor from the book.
func (m Model) deleteSelected() Model {
	name, ok := m.Selected()
	if !ok {
		return m
	}
	if err := m.book.Delete(name); err != nil {
		m.status = err.Error()
		return m
	}
	m.names = m.book.Names()
	if m.cursor >= len(m.names) {
		m.cursor = len(m.names) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.status = fmt.Sprintf("Deleted %s", name)
	return m
}

// Selected returns the name under the cursor.
func (m Model) Selected() (string, bool) {
	if len(m.names) == 0 || m.cursor < 0 || m.cursor >= len(m.names) {
		return "", false
	}
	return m.names[m.cursor], true
}

// View renders the list and detail panes with a help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	listW, detailW := paneWidths(m.width)
	// Borders take two columns per pane.
	list := listBorder.Width(max(listW-2, 0)).Render(m.listView())
	detail := detailBorder.Width(max(detailW-2, 0)).Render(m.detailView())

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, detail))
	b.WriteByte('\n')
	if m.status != "" {
		b.WriteString(statusText.Render(m.status))
		b.WriteByte('\n')
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) listView() string {
	if len(m.names) == 0 {
		return mutedText.Render("No contacts")
	}
	var b strings.Builder
	for i, name := range m.names {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == m.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		b.WriteString(name)
	}
	return b.String()
}

func (m Model) detailView() string {
	name, ok := m.Selected()
	if !ok {
		return ""
	}
	r, ok := m.book.Find(name)
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(nameText.Render(r.Name().Value()))
	phones := r.Phones()
	if len(phones) == 0 {
		b.WriteString("\n" + mutedText.Render("No phones"))
	}
	for i, p := range phones {
		fmt.Fprintf(&b, "\n%d. %s", i+1, p.Value())
	}
	return b.String()
}
