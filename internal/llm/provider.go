package llm

import "context"

// Provider produces a single completion for a conversation.
type Provider interface {
	Complete(ctx context.Context, req *CompletionRequest) (*Completion, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Model    string
	Messages []Message
}

// Completion is the assistant reply. TokensUsed is nil when the upstream
// reported no usage.
type Completion struct {
	Content    string
	TokensUsed *int
	Model      string
}
