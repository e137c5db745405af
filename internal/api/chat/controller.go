package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chatwidgetai/widget-relay/internal/utils"
)

// Wire error strings; embedded widgets in the field match on these bodies,
// so they are part of the protocol.
const (
	errInvalidMessages   = "Invalid messages format. Expected an array."
	errMissingCredential = "Missing Gemini API key. Please check your environment variables."
	errProviderFailure   = "Error communicating with Gemini API. Please check your API key and try again."
)

// Controller handles chat relay HTTP requests
type Controller struct {
	svc *Service
}

// NewController creates a new chat controller
func NewController(svc *Service) *Controller {
	return &Controller{svc: svc}
}

// Respond handles the POST /chat endpoint
func (c *Controller) Respond(ctx *gin.Context) {
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Zlog.Warn("invalid /chat payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidMessages})
		return
	}

	var messages []ChatMessage
	if len(req.Messages) == 0 || json.Unmarshal(req.Messages, &messages) != nil || len(messages) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidMessages})
		return
	}

	text, err := c.svc.Respond(ctx.Request.Context(), messages, req.Settings, req.SessionID)
	if err != nil {
		if errors.Is(err, ErrMissingCredential) {
			utils.Zlog.Error("chat request refused: no provider credential configured")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": errMissingCredential})
			return
		}
		utils.Zlog.Error("chat relay failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   errProviderFailure,
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, Response{Response: text})
}
