package llm

import (
	"context"
)

// Message is a minimal chat message format for the provider
type Message struct {
	Role    string // system | user | assistant
	Content string
}

// Usage captures token accounting if available
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Provider abstracts the model backend; implementations wrap Eino chat models.
type Provider interface {
	Generate(ctx context.Context, messages []Message) (text string, usage Usage, err error)
}

// StaticProvider returns a canned response; used by handler tests so no
// network or credential is involved.
type StaticProvider struct {
	Text string
	Err  error
}

func (s *StaticProvider) Generate(ctx context.Context, messages []Message) (string, Usage, error) {
	if s.Err != nil {
		return "", Usage{}, s.Err
	}
	return s.Text, Usage{}, nil
}
