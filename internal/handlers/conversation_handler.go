package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"appforge-pipeline/internal/models"
	"appforge-pipeline/internal/pkg/logger"
)

// ConversationAPI is what the handler needs from the service layer.
type ConversationAPI interface {
	ProcessMessage(ctx context.Context, conversationID, userID, text string) (*models.TurnResponse, error)
	GetStatus(ctx context.Context, conversationID string) (*models.ConversationSnapshot, error)
	Reset(ctx context.Context, conversationID string) error
	Stats() map[string]interface{}
	HealthCheck(ctx context.Context) error
}

type ConversationHandler struct {
	service ConversationAPI
	logger  *logger.Logger
}

func NewConversationHandler(service ConversationAPI, log *logger.Logger) *ConversationHandler {
	return &ConversationHandler{service: service, logger: log}
}

func (h *ConversationHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/stats", h.GetStats)

	api := router.Group("/api/v1/conversations")
	{
		api.POST("/:id/messages", h.PostMessage)
		api.GET("/:id", h.GetStatus)
		api.DELETE("/:id", h.Reset)
	}
}

// PostMessage handles POST /api/v1/conversations/:id/messages.
func (h *ConversationHandler) PostMessage(c *gin.Context) {
	conversationID := c.Param("id")

	var req models.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.service.ProcessMessage(c.Request.Context(), conversationID, req.UserID, req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetStatus handles GET /api/v1/conversations/:id.
func (h *ConversationHandler) GetStatus(c *gin.Context) {
	snapshot, err := h.service.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"conversation_id": c.Param("id"),
		"context":         snapshot.Context,
		"state":           snapshot.State,
		"updated_at":      snapshot.UpdatedAt,
	})
}

// Reset handles DELETE /api/v1/conversations/:id.
func (h *ConversationHandler) Reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"conversation_id": c.Param("id"),
		"status":          "reset",
	})
}

func (h *ConversationHandler) Health(c *gin.Context) {
	if err := h.service.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (h *ConversationHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Stats())
}

func (h *ConversationHandler) respondError(c *gin.Context, err error) {
	var pipeErr *models.PipelineError
	status := http.StatusInternalServerError
	code := "INTERNAL"
	if errors.As(err, &pipeErr) {
		code = pipeErr.Code
		switch pipeErr.Kind {
		case models.ErrorKindValidation:
			status = http.StatusBadRequest
		case models.ErrorKindNotFound:
			status = http.StatusNotFound
		case models.ErrorKindExternal:
			status = http.StatusServiceUnavailable
		}
	}
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  code,
	})
}
