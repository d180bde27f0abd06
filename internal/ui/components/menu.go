package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Detail   string // dim text after the label
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical menu. Only a window of Height items is drawn when
// Height is set.
type Menu struct {
	Items    []MenuItem
	Selected int
	Height   int
	offset   int
}

// NewMenu creates a new menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// Select moves the cursor to index i when it is a valid enabled item.
func (m *Menu) Select(i int) {
	if i >= 0 && i < len(m.Items) && !m.Items[i].Disabled {
		m.Selected = i
	}
}

// Update handles keyboard navigation. Enter runs the selected item's
// action.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m *Menu) View() string {
	start, end := 0, len(m.Items)
	if m.Height > 0 && len(m.Items) > m.Height {
		if m.Selected < m.offset {
			m.offset = m.Selected
		}
		if m.Selected >= m.offset+m.Height {
			m.offset = m.Selected - m.Height + 1
		}
		start, end = m.offset, m.offset+m.Height
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		item := m.Items[i]
		var line string
		switch {
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + item.Label)
		case item.Disabled:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + item.Label)
		default:
			line = theme.Unselected.Render("    " + item.Label)
		}
		if item.Detail != "" {
			line += "  " + theme.Hint.Render(item.Detail)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
