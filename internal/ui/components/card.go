package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for cards so that
// stacked sections align.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 76)
}

// Card wraps content in a rounded-border card of width cw.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// Modal wraps content in a double-border box centered in width x height.
func Modal(content string, cw, width, height int) string {
	box := theme.Modal.Width(cw).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// Button renders a one-line button.
func Button(label string, selected bool) string {
	if selected {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}

// ErrorLine renders a validation or failure message, or "" for none.
func ErrorLine(msg string) string {
	if msg == "" {
		return ""
	}
	return theme.ErrorText.Render("✗ " + msg)
}
