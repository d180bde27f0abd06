package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenuSkipsDisabled(t *testing.T) {
	ran := ""
	m := NewMenu([]MenuItem{
		{Label: "Header", Disabled: true},
		{Label: "First", Action: func() tea.Cmd { ran = "first"; return nil }},
		{Label: "Gap", Disabled: true},
		{Label: "Second", Action: func() tea.Cmd { ran = "second"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("expected down to skip the disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyEnter))
	if ran != "second" {
		t.Errorf("expected second action to run, got %q", ran)
	}

	m, _ = m.Update(key(tea.KeyUp))
	m, _ = m.Update(key(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("expected up to stop at the first enabled item, got %d", m.Selected)
	}
}

func TestMenuWindow(t *testing.T) {
	items := make([]MenuItem, 10)
	for i := range items {
		items[i] = MenuItem{Label: string(rune('a' + i))}
	}
	m := NewMenu(items)
	m.Height = 3
	m.Select(7)

	out := m.View()
	if strings.Count(out, "\n") != 3 {
		t.Errorf("expected 3 rows, got %q", out)
	}
	if !strings.Contains(out, "▸ h") {
		t.Errorf("selected row should be visible, got %q", out)
	}
}

func TestChecklistToggle(t *testing.T) {
	checked := map[string]bool{}
	c := Checklist{
		Options: []string{"Welding", "Plumbing", "Carpentry"},
		Checked: func(o string) bool { return checked[o] },
		OnToggle: func(o string, on bool) {
			checked[o] = on
		},
		Height: 2,
	}

	c = c.Update(key(tea.KeyDown))
	c = c.Update(key(tea.KeySpace))
	if !checked["Plumbing"] {
		t.Fatal("space should check the item under the cursor")
	}
	c = c.Update(key(tea.KeySpace))
	if checked["Plumbing"] {
		t.Error("second space should uncheck it")
	}

	c = c.Update(key(tea.KeyDown))
	c = c.Update(key(tea.KeyDown))
	if c.Cursor != 2 {
		t.Errorf("cursor should stop at the last option, got %d", c.Cursor)
	}
	out := c.View(true)
	if strings.Contains(out, "Welding") {
		t.Errorf("first option should have scrolled out of view, got %q", out)
	}
	if !strings.Contains(out, "3/3") {
		t.Errorf("expected position marker, got %q", out)
	}
}
