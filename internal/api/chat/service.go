package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chatwidgetai/widget-relay/internal/llm"
	"github.com/chatwidgetai/widget-relay/internal/loaders"
	"github.com/chatwidgetai/widget-relay/internal/prompt"
	"github.com/chatwidgetai/widget-relay/internal/sanitize"
	"github.com/chatwidgetai/widget-relay/internal/utils"
)

// ErrMissingCredential is returned when no model provider is configured.
// The gateway fails closed rather than degrading to a fake response.
var ErrMissingCredential = errors.New("missing model provider credential")

// Service relays one validated chat request to the model provider
type Service struct {
	db       *loaders.PostgresClient
	provider llm.Provider
}

func NewService(db *loaders.PostgresClient, provider llm.Provider) *Service {
	return &Service{db: db, provider: provider}
}

// Respond builds the grounded prompt for the latest user turn, forwards it to
// the provider with the prior turns as context, and sanitizes the result.
// Provider failures are surfaced to the caller; the gateway never retries
// (retry responsibility stays with the widget to avoid duplicate-request
// amplification).
func (s *Service) Respond(ctx context.Context, messages []ChatMessage, settings *BusinessSettings, sessionID string) (string, error) {
	startTime := time.Now()

	if s.provider == nil {
		return "", ErrMissingCredential
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("empty conversation")
	}

	// All but the last message are prior-turns history; the last is the
	// user turn the prompt is built around.
	history := messages[:len(messages)-1]
	latest := messages[len(messages)-1].Content

	var bctx prompt.BusinessContext
	if settings != nil {
		bctx = prompt.BusinessContext{
			BusinessName: settings.BusinessName,
			BusinessInfo: settings.BusinessInfo,
			SalesRepName: settings.SalesRepName,
		}
	}
	instruction := prompt.Build(bctx, latest)

	providerMsgs := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		providerMsgs = append(providerMsgs, llm.Message{Role: m.Role, Content: m.Content})
	}
	providerMsgs = append(providerMsgs, llm.Message{Role: "user", Content: instruction})

	raw, usage, err := s.provider.Generate(ctx, providerMsgs)
	if err != nil {
		return "", fmt.Errorf("provider call failed: %w", err)
	}

	clean := sanitize.Clean(raw)

	// Persist the exchanged turns in the background; a logging failure must
	// never affect the response.
	if sessionID != "" && s.db != nil {
		saveConversationTurns(s.db, sessionID, latest, clean)
	}

	utils.Zlog.Info("Chat request completed",
		zap.String("session_id", sessionID),
		zap.Int("history_turns", len(history)),
		zap.Int("total_tokens", usage.TotalTokens),
		zap.Int64("latency_ms", time.Since(startTime).Milliseconds()))

	return clean, nil
}
