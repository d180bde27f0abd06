package auth

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skillnav/internal/ui/components"
	"github.com/abhisek/skillnav/internal/ui/theme"
)

// control is one focusable row: a text input or a button.
type control struct {
	input  *components.TextInput
	label  string
	link   bool
	action func() tea.Cmd
}

// fieldset moves focus between inputs and buttons. Enter in an input
// advances to the next control; enter on a button runs it.
type fieldset struct {
	controls []control
	focus    int
}

func (f *fieldset) addInput(in components.TextInput) {
	f.controls = append(f.controls, control{input: &in})
}

func (f *fieldset) addButton(label string, action func() tea.Cmd) {
	f.controls = append(f.controls, control{label: label, action: action})
}

func (f *fieldset) addLink(label string, action func() tea.Cmd) {
	f.controls = append(f.controls, control{label: label, link: true, action: action})
}

func (f *fieldset) value(i int) string {
	return strings.TrimSpace(f.controls[i].input.Value())
}

// rawValue returns the input exactly as typed; passwords are not trimmed.
func (f *fieldset) rawValue(i int) string {
	return f.controls[i].input.Value()
}

func (f *fieldset) init() tea.Cmd {
	return f.setFocus(0)
}

func (f *fieldset) setFocus(i int) tea.Cmd {
	n := len(f.controls)
	f.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range f.controls {
		in := f.controls[j].input
		if in == nil {
			continue
		}
		if j == f.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (f *fieldset) update(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return f.setFocus(f.focus - 1)
		case "enter":
			c := f.controls[f.focus]
			if c.input != nil {
				return f.setFocus(f.focus + 1)
			}
			if c.action != nil {
				return c.action()
			}
			return nil
		}
	}

	c := f.controls[f.focus]
	if c.input == nil {
		return nil
	}
	updated, cmd := c.input.Update(msg)
	*c.input = updated
	return cmd
}

func (f *fieldset) view() string {
	var b strings.Builder
	for i, c := range f.controls {
		switch {
		case c.input != nil:
			b.WriteString(c.input.View() + "\n\n")
		case c.link:
			if i == f.focus {
				b.WriteString(theme.Selected.Render("▸ "+c.label) + "\n")
			} else {
				b.WriteString(theme.Link.Render(c.label) + "\n")
			}
		default:
			b.WriteString(components.Button(c.label, i == f.focus) + "\n\n")
		}
	}
	return b.String()
}
