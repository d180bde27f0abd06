// Package chat is the free-form career assistant available to signed-in
// learners.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/skillnav/internal/llm"
	"github.com/abhisek/skillnav/internal/pathway"
)

const systemPrompt = `You are the AI Skill Assistant of the NCVET Skill Navigator. Help learners in India with vocational training, NSQF qualifications, certifications, apprenticeships and job search. Keep answers short and practical, use plain language, and say so when you are unsure.`

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is one entry of the conversation.
type Message struct {
	Sender Sender
	Text   string
}

// Config holds assistant settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// MaxHistory caps how many recent messages are sent with each
	// question.
	MaxHistory int
}

// DefaultConfig returns sensible defaults for the assistant.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024, Temperature: 0.7, MaxHistory: 20}
}

// Assistant answers questions with an LLM.
type Assistant struct {
	provider llm.Provider
	cfg      Config
}

// NewAssistant creates an assistant. A nil provider makes the assistant
// unavailable.
func NewAssistant(provider llm.Provider, cfg Config) *Assistant {
	return &Assistant{provider: provider, cfg: cfg}
}

// Available reports whether the assistant can answer at all.
func (a *Assistant) Available() bool {
	return a != nil && a.provider != nil
}

// Reply answers the last user message in history, replying in language.
func (a *Assistant) Reply(ctx context.Context, history []Message, language string) (string, error) {
	if !a.Available() {
		return "", &llm.ErrProviderUnavailable{}
	}
	ctx = llm.WithPurpose(ctx, "chat")

	if n := a.cfg.MaxHistory; n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	msgs := make([]llm.Message, 0, len(history))
	for _, m := range history {
		role := llm.RoleUser
		if m.Sender == SenderAI {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Text})
	}
	// Providers expect the conversation to open with the user.
	for len(msgs) > 0 && msgs[0].Role == llm.RoleAssistant {
		msgs = msgs[1:]
	}
	if len(msgs) == 0 {
		return "", fmt.Errorf("chat: no question to answer")
	}

	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      systemPrompt + "\nReply in " + pathway.LanguageName(language) + ".",
		Messages:    msgs,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}

	reply := strings.TrimSpace(string(resp.Content))
	if reply == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("empty reply")}
	}
	return reply, nil
}

// Conversation is the visible message list plus the in-flight state.
type Conversation struct {
	messages []Message
	pending  bool
}

// Messages returns the conversation so far.
func (c *Conversation) Messages() []Message {
	return c.messages
}

// Pending reports whether a question is awaiting its reply.
func (c *Conversation) Pending() bool {
	return c.pending
}

// Ask appends the user's question and marks the conversation pending. It
// returns the history to send, or nil when text is blank or a reply is
// already pending.
func (c *Conversation) Ask(text string) []Message {
	text = strings.TrimSpace(text)
	if text == "" || c.pending {
		return nil
	}
	c.messages = append(c.messages, Message{Sender: SenderUser, Text: text})
	c.pending = true
	return append([]Message(nil), c.messages...)
}

// Answer appends the assistant's reply and clears the pending state.
func (c *Conversation) Answer(text string) {
	c.messages = append(c.messages, Message{Sender: SenderAI, Text: text})
	c.pending = false
}

// Reset empties the conversation.
func (c *Conversation) Reset() {
	c.messages = nil
	c.pending = false
}
