package chat

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chatwidgetai/widget-relay/internal/config"
	"github.com/chatwidgetai/widget-relay/internal/llm"
	"github.com/chatwidgetai/widget-relay/internal/loaders"
	"github.com/chatwidgetai/widget-relay/internal/utils"
)

// RegisterRoutes registers the /chat relay endpoint
func RegisterRoutes(router *gin.Engine, db *loaders.PostgresClient, cfg *config.Config) {
	ctx := context.Background()

	var provider llm.Provider
	p, err := llm.NewGeminiProvider(ctx, cfg.GeminiAPIKeys, llm.GeminiConfig{
		Model:       cfg.ModelName,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxOutputTokens,
	})
	if err != nil {
		// Requests will be refused with the missing-credential error rather
		// than served by a stub.
		utils.Zlog.Error("failed to create Gemini provider", zap.Error(err))
	} else {
		provider = p
	}

	svc := NewService(db, provider)
	ctrl := NewController(svc)

	router.POST("/chat", ctrl.Respond)
}
