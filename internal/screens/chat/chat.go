package chat

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/skillnav/internal/chat"
	"github.com/abhisek/skillnav/internal/screen"
	"github.com/abhisek/skillnav/internal/ui/components"
	"github.com/abhisek/skillnav/internal/ui/layout"
	"github.com/abhisek/skillnav/internal/ui/theme"
)

// ChatScreen is the assistant overlay. The conversation lives in the
// controller so it survives closing and reopening the overlay.
type ChatScreen struct {
	env   *screen.Env
	input components.TextInput
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a ChatScreen.
func New(env *screen.Env) *ChatScreen {
	return &ChatScreen{
		env:   env,
		input: components.NewTextInput("", env.T("chat.placeholder"), 500),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *ChatScreen) Title() string {
	return s.env.T("chat.title")
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: s.env.T("app.keys.select")},
		{Key: "Esc", Description: s.env.T("app.keys.back")},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "enter" {
		cmd := s.env.AskChat(s.input.Value())
		if cmd != nil {
			s.input.SetValue("")
		}
		return s, cmd
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// transcript renders the conversation, greeting first.
func (s *ChatScreen) transcript(cw int) []string {
	bubble := func(m chat.Message) string {
		if m.Sender == chat.SenderUser {
			box := lipgloss.NewStyle().
				Foreground(theme.Text).
				Background(theme.Primary).
				Padding(0, 1).
				Width(min(lipgloss.Width(m.Text)+2, cw*3/4)).
				Render(m.Text)
			return lipgloss.PlaceHorizontal(cw, lipgloss.Right, box)
		}
		return lipgloss.NewStyle().
			Foreground(theme.Text).
			Background(theme.BgCard).
			Padding(0, 1).
			Width(min(lipgloss.Width(m.Text)+2, cw*3/4)).
			Render(m.Text)
	}

	msgs := append([]chat.Message{{Sender: chat.SenderAI, Text: s.env.T("chat.initialMessage")}}, s.env.Ctrl.ChatMessages()...)
	var lines []string
	for _, m := range msgs {
		lines = append(lines, strings.Split(bubble(m), "\n")...)
		lines = append(lines, "")
	}
	if s.env.Ctrl.ChatPending() {
		lines = append(lines, theme.Hint.Render("…"))
	}
	return lines
}

func (s *ChatScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 64)
	bodyHeight := max(height-10, 3)

	lines := s.transcript(cw - 4)
	if len(lines) > bodyHeight {
		lines = lines[len(lines)-bodyHeight:]
	}

	content := strings.Join([]string{
		theme.Title.Render("💬 " + s.env.T("chat.title")),
		"",
		strings.Join(lines, "\n"),
		"",
		s.input.View(),
	}, "\n")
	return components.Modal(content, cw, width, height)
}
