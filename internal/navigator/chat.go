package navigator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/chat"
	"github.com/abhisek/skillnav/internal/llm"
)

// ChatAvailable reports whether the assistant may be opened. It is only
// offered to signed-in users.
func (c *Controller) ChatAvailable() bool {
	return c.user != nil
}

// ChatMessages returns the conversation so far.
func (c *Controller) ChatMessages() []chat.Message {
	return c.chat.Messages()
}

// ChatPending reports whether a reply is outstanding.
func (c *Controller) ChatPending() bool {
	return c.chat.Pending()
}

// ChatTicket identifies one question to the assistant. The conversation
// outlives form and pathway changes, so only chatSeq guards it.
type ChatTicket struct {
	seq      uint64
	History  []chat.Message
	Language string
}

// AskChat adds the user's question to the conversation.
func (c *Controller) AskChat(text string) (ChatTicket, bool) {
	if !c.ChatAvailable() {
		return ChatTicket{}, false
	}
	history := c.chat.Ask(text)
	if history == nil {
		return ChatTicket{}, false
	}
	c.chatSeq++
	return ChatTicket{seq: c.chatSeq, History: history, Language: c.tr.Locale().Code()}, true
}

// ReplyChat asks the assistant. It reads no controller state.
func (c *Controller) ReplyChat(ctx context.Context, t ChatTicket) (string, error) {
	if c.assistant == nil {
		return "", fmt.Errorf("chat: %w", &llm.ErrProviderUnavailable{})
	}
	return c.assistant.Reply(ctx, t.History, t.Language)
}

// CompleteChat appends the reply, or a localized apology on failure.
func (c *Controller) CompleteChat(t ChatTicket, reply string, err error) bool {
	if t.seq != c.chatSeq || !c.chat.Pending() {
		c.logger.Debug("discarding stale chat reply")
		return false
	}
	if err != nil {
		c.logger.Warn("chat reply failed", zap.Error(err))
		var unavailable *llm.ErrProviderUnavailable
		if errors.As(err, &unavailable) {
			reply = c.tr.T("chat.unavailable")
		} else {
			reply = c.tr.T("chat.errorMessage")
		}
	}
	c.chat.Answer(reply)
	return true
}
