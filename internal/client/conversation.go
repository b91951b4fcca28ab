package client

import (
	"context"

	"github.com/Vovarama1992/gold-assistant/internal/chat"
)

// Conversation is the client-held history. Each request carries the turns
// that came before the new message.
type Conversation struct {
	client  *Client
	history []chat.Message
}

func NewConversation(c *Client) *Conversation {
	return &Conversation{client: c}
}

// Start fetches the greeting and records it as the first assistant turn.
func (c *Conversation) Start(ctx context.Context) (string, error) {
	welcome, err := c.client.Welcome(ctx)
	if err != nil {
		return "", err
	}
	c.history = append(c.history, chat.Message{Role: chat.RoleAssistant, Content: welcome})
	return welcome, nil
}

// Ask sends one message. On failure the history is left untouched.
func (c *Conversation) Ask(ctx context.Context, text string) (string, error) {
	prior := make([]chat.Message, len(c.history))
	copy(prior, c.history)

	reply, err := c.client.Chat(ctx, text, prior)
	if err != nil {
		return "", err
	}

	c.history = append(c.history,
		chat.Message{Role: chat.RoleUser, Content: text},
		chat.Message{Role: chat.RoleAssistant, Content: reply},
	)
	return reply, nil
}

func (c *Conversation) History() []chat.Message {
	out := make([]chat.Message, len(c.history))
	copy(out, c.history)
	return out
}
