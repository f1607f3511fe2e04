package handler

import (
	"github.com/colaai/backend/internal/application/menu"
	"github.com/colaai/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MenuHandler exposes tenant menu cache operations.
type MenuHandler struct {
	BaseHandler
	revalidator *menu.RevalidateService
	logger      *zap.Logger
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(revalidator *menu.RevalidateService, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{
		revalidator: revalidator,
		logger:      logger,
	}
}

// RegisterRoutes registers menu routes
func (h *MenuHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/menu/revalidate", h.Revalidate)
}

// Revalidate drops the caller's cached public menu. Unauthenticated
// callers get a skipped outcome rather than an error.
func (h *MenuHandler) Revalidate(c *gin.Context) {
	session := middleware.GetSession(c)

	outcome, err := h.revalidator.RevalidateTenantMenu(c.Request.Context(), session)
	if err != nil {
		h.logger.Error("Menu revalidation failed", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"outcome": outcome})
}
