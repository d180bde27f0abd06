package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillnav/internal/ui/theme"
)

// Checklist is a scrolling multi-select list. Space toggles the item under
// the cursor and reports it through OnToggle.
type Checklist struct {
	Options  []string
	Labels   []string // display labels, parallel to Options
	Checked  func(option string) bool
	OnToggle func(option string, checked bool)
	Cursor   int
	Height   int
	offset   int
}

// Update handles cursor movement and toggling.
func (c Checklist) Update(msg tea.Msg) Checklist {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Options) == 0 {
		return c
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ":
		opt := c.Options[c.Cursor]
		if c.OnToggle != nil {
			c.OnToggle(opt, !c.isChecked(opt))
		}
	}
	return c
}

func (c Checklist) isChecked(opt string) bool {
	return c.Checked != nil && c.Checked(opt)
}

// View renders the visible window of options. focused highlights the
// cursor row.
func (c *Checklist) View(focused bool) string {
	height := c.Height
	if height <= 0 || height > len(c.Options) {
		height = len(c.Options)
	}
	if c.Cursor < c.offset {
		c.offset = c.Cursor
	}
	if c.Cursor >= c.offset+height {
		c.offset = c.Cursor - height + 1
	}

	var b strings.Builder
	for i := c.offset; i < c.offset+height; i++ {
		opt := c.Options[i]
		label := opt
		if i < len(c.Labels) {
			label = c.Labels[i]
		}
		box := "[ ]"
		if c.isChecked(opt) {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, label)
		if focused && i == c.Cursor {
			b.WriteString(theme.Selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+line) + "\n")
		}
	}
	if len(c.Options) > height {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d/%d", c.Cursor+1, len(c.Options))) + "\n")
	}
	return b.String()
}
