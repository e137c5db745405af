package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chatwidgetai/widget-relay/internal/loaders"
	"github.com/chatwidgetai/widget-relay/internal/utils"
)

// Controller handles widget settings HTTP requests
type Controller struct {
	svc *Service
}

// NewController creates a new settings controller
func NewController(svc *Service) *Controller {
	return &Controller{svc: svc}
}

// Resolve handles GET /settings?uid={tenantId}
func (c *Controller) Resolve(ctx *gin.Context) {
	uid := ctx.Query("uid")
	if uid == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing uid parameter"})
		return
	}

	resp, err := c.svc.Resolve(ctx.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, loaders.ErrSettingsNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Settings not found"})
			return
		}
		utils.Zlog.Error("settings lookup failed", zap.String("uid", uid), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Database error",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Save handles POST /settings (dashboard write path)
func (c *Controller) Save(ctx *gin.Context) {
	var req UpsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings payload", "details": err.Error()})
		return
	}

	if err := c.svc.Save(ctx.Request.Context(), &req); err != nil {
		utils.Zlog.Error("settings save failed", zap.String("uid", req.UID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Database error",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
