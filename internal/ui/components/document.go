package components

import (
	"regexp"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/ui/layout"
	"github.com/abhisek/skillnav/internal/ui/theme"
)

var (
	boldSpan = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	linkSpan = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// RenderMarkdown turns the small Markdown subset the exporters write
// (headings, bullets, emphasis, links) into styled, wrapped terminal
// lines.
func RenderMarkdown(md string, width int) []string {
	width = max(width, 20)
	var out []string
	for _, line := range strings.Split(md, "\n") {
		var styled string
		switch {
		case strings.HasPrefix(line, "# "):
			styled = theme.Title.Width(width).Render(strings.TrimPrefix(line, "# "))
		case strings.HasPrefix(line, "## "):
			styled = theme.Heading.Width(width).Render(strings.ToUpper(strings.TrimPrefix(line, "## ")))
		case strings.HasPrefix(line, "### "), strings.HasPrefix(line, "#### "):
			styled = theme.Label.Width(width).Render(strings.TrimLeft(line, "# "))
		case strings.HasPrefix(line, "- "):
			styled = lipgloss.NewStyle().Width(width).PaddingLeft(2).Render("• " + inline(strings.TrimPrefix(line, "- ")))
		case strings.HasPrefix(line, "*") && strings.HasSuffix(line, "*") && !strings.HasPrefix(line, "**"):
			styled = theme.Hint.Width(width).Render(strings.Trim(line, "*"))
		default:
			styled = theme.Body.Width(width).Render(inline(line))
		}
		out = append(out, strings.Split(styled, "\n")...)
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return out
}

func inline(s string) string {
	s = linkSpan.ReplaceAllStringFunc(s, func(m string) string {
		parts := linkSpan.FindStringSubmatch(m)
		return parts[1] + " " + theme.Link.Render(parts[2])
	})
	return boldSpan.ReplaceAllStringFunc(s, func(m string) string {
		return theme.Label.Render(boldSpan.FindStringSubmatch(m)[1])
	})
}

// Pager scrolls a block of lines.
type Pager struct {
	Offset int
	height int
}

// Update handles scrolling keys. It reports whether the key was used.
func (p *Pager) Update(msg tea.Msg) bool {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return false
	}
	page := max(p.height-1, 1)
	switch kmsg.String() {
	case "up", "k":
		p.Offset--
	case "down", "j":
		p.Offset++
	case "pgup", "ctrl+u":
		p.Offset -= page
	case "pgdown", "ctrl+f", "space":
		p.Offset += page
	case "home", "g":
		p.Offset = 0
	case "end", "G":
		p.Offset = 1 << 30
	default:
		return false
	}
	p.Offset = max(p.Offset, 0)
	return true
}

// View returns the visible window of lines.
func (p *Pager) View(lines []string, height int) string {
	p.height = height
	window, off := layout.Scroll(lines, p.Offset, height)
	p.Offset = off
	return strings.Join(window, "\n")
}
