package llm

import "context"

type Message struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
}

// Client is a chat-completion provider. The rephrasing engine sends a
// single user message and takes the text reply; no tools, no streaming.
type Client interface {
	Chat(ctx context.Context, systemPrompt string, messages []Message) (string, error)
}
