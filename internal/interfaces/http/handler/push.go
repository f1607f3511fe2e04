package handler

import (
	"github.com/colaai/backend/internal/application/notification"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SendPushRequest is the body of POST /push/send
type SendPushRequest struct {
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// PushHandler exposes push-notification delivery endpoints.
type PushHandler struct {
	BaseHandler
	dispatcher *notification.Dispatcher
	logger     *zap.Logger
}

// NewPushHandler creates a new PushHandler
func NewPushHandler(dispatcher *notification.Dispatcher, logger *zap.Logger) *PushHandler {
	return &PushHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterRoutes registers push routes
func (h *PushHandler) RegisterRoutes(rg *gin.RouterGroup) {
	push := rg.Group("/push")
	{
		push.POST("/send", h.SendPush)
		push.GET("/test", h.SendTestPush)
	}
}

// SendPush delivers a push notification to a user.
func (h *PushHandler) SendPush(c *gin.Context) {
	var req SendPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.dispatcher.SendUserPush(c.Request.Context(), req.UserID, req.Title, req.Message, req.URL)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SendTestPush sends a fixed test notification to the given user.
func (h *PushHandler) SendTestPush(c *gin.Context) {
	userID := c.Query("userId")

	result, err := h.dispatcher.SendUserPush(c.Request.Context(), userID,
		"Test notification", "Push delivery is working.", "")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
