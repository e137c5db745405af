package llm

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/chatwidgetai/widget-relay/internal/utils"
)

// GeminiProvider wraps one Gemini chat model per API key with round-robin
// key rotation. Rotating keys distributes requests and avoids per-key rate
// limits.
type GeminiProvider struct {
	models   []model.BaseChatModel
	keyIndex uint64 // atomic counter for round-robin selection
}

// GeminiConfig contains the fixed generation settings for the relay. The
// output cap is mandatory: generation is always bounded.
type GeminiConfig struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// NewGeminiProvider creates a provider that rotates between multiple API keys
func NewGeminiProvider(ctx context.Context, apiKeys []string, cfg GeminiConfig) (*GeminiProvider, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("at least one API key is required")
	}

	temperature := cfg.Temperature
	maxTokens := cfg.MaxTokens

	models := make([]model.BaseChatModel, len(apiKeys))
	for i, key := range apiKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: key,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client for key %d: %w", i+1, err)
		}

		chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
			Client:      client,
			Model:       cfg.Model,
			Temperature: &temperature,
			MaxTokens:   &maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model for key %d: %w", i+1, err)
		}

		models[i] = chatModel
	}

	utils.Zlog.Info("Created Gemini provider with round-robin key rotation",
		zap.Int("key_count", len(apiKeys)),
		zap.String("model", cfg.Model),
		zap.Int("max_tokens", cfg.MaxTokens))

	return &GeminiProvider{
		models:   models,
		keyIndex: 0,
	}, nil
}

// getNextModel returns the next model using round-robin selection.
// Thread-safe: uses atomic operations to ensure fair distribution.
func (p *GeminiProvider) getNextModel() model.BaseChatModel {
	if len(p.models) == 1 {
		return p.models[0]
	}
	idx := atomic.AddUint64(&p.keyIndex, 1)
	return p.models[idx%uint64(len(p.models))]
}

// Generate implements Provider
func (p *GeminiProvider) Generate(ctx context.Context, messages []Message) (string, Usage, error) {
	input := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			input = append(input, schema.SystemMessage(m.Content))
		case "assistant":
			input = append(input, schema.AssistantMessage(m.Content, nil))
		default:
			input = append(input, schema.UserMessage(m.Content))
		}
	}

	result, err := p.getNextModel().Generate(ctx, input)
	if err != nil {
		return "", Usage{}, fmt.Errorf("gemini generation failed: %w", err)
	}

	var usage Usage
	if result.ResponseMeta != nil && result.ResponseMeta.Usage != nil {
		usage = Usage{
			PromptTokens:     result.ResponseMeta.Usage.PromptTokens,
			CompletionTokens: result.ResponseMeta.Usage.CompletionTokens,
			TotalTokens:      result.ResponseMeta.Usage.TotalTokens,
		}
	}

	return result.Content, usage, nil
}
