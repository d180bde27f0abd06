package chat

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/skillnav/internal/llm"
)

func TestReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("  Try the PMKVY electrician course.\n"))
	a := NewAssistant(mock, DefaultConfig())

	history := []Message{
		{Sender: SenderAI, Text: "Hello! How can I help?"},
		{Sender: SenderUser, Text: "Where do I start with wiring?"},
	}
	reply, err := a.Reply(t.Context(), history, "hi")
	require.NoError(t, err)
	assert.Equal(t, "Try the PMKVY electrician course.", reply)

	req := mock.LastRequest()
	assert.Nil(t, req.Schema)
	assert.Contains(t, req.System, "Reply in Hindi.")
	require.Len(t, req.Messages, 1, "leading assistant greeting is dropped")
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
}

func TestReplyTrimsHistory(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("ok"))
	cfg := DefaultConfig()
	cfg.MaxHistory = 3
	a := NewAssistant(mock, cfg)

	var history []Message
	for i := range 6 {
		sender := SenderUser
		if i%2 == 1 {
			sender = SenderAI
		}
		history = append(history, Message{Sender: sender, Text: fmt.Sprint(i)})
	}
	history = append(history, Message{Sender: SenderUser, Text: "last"})

	_, err := a.Reply(t.Context(), history, "en")
	require.NoError(t, err)

	msgs := mock.LastRequest().Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, "4", msgs[0].Content)
	assert.Equal(t, llm.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "last", msgs[2].Content)
}

func TestReplyFailures(t *testing.T) {
	_, err := NewAssistant(nil, DefaultConfig()).Reply(t.Context(), []Message{{Sender: SenderUser, Text: "hi"}}, "en")
	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.False(t, NewAssistant(nil, DefaultConfig()).Available())

	a := NewAssistant(llm.NewMockProvider(llm.TextResponse("   ")), DefaultConfig())
	_, err = a.Reply(t.Context(), []Message{{Sender: SenderUser, Text: "hi"}}, "en")
	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)

	a = NewAssistant(llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")}), DefaultConfig())
	_, err = a.Reply(t.Context(), []Message{{Sender: SenderUser, Text: "hi"}}, "en")
	assert.ErrorContains(t, err, "boom")

	_, err = a.Reply(t.Context(), []Message{{Sender: SenderAI, Text: "greeting only"}}, "en")
	assert.Error(t, err)
}

func TestConversation(t *testing.T) {
	var c Conversation

	assert.Nil(t, c.Ask("   "))
	history := c.Ask("What is NSQF?")
	require.Len(t, history, 1)
	assert.True(t, c.Pending())
	assert.Nil(t, c.Ask("second question while waiting"))

	c.Answer("The National Skills Qualifications Framework.")
	assert.False(t, c.Pending())
	require.Len(t, c.Messages(), 2)
	assert.Equal(t, SenderAI, c.Messages()[1].Sender)

	history = c.Ask("Thanks")
	history[0].Text = "mutated"
	assert.Equal(t, "What is NSQF?", c.Messages()[0].Text, "returned history is a copy")

	c.Reset()
	assert.Empty(t, c.Messages())
	assert.False(t, c.Pending())
}
