package handler

import (
	"errors"
	"net/http"

	"github.com/colaai/backend/internal/application/menu"
	"github.com/colaai/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ManifestHandler serves the per-store installable-app manifest.
type ManifestHandler struct {
	BaseHandler
	manifests *menu.ManifestService
	logger    *zap.Logger
}

// NewManifestHandler creates a new ManifestHandler
func NewManifestHandler(manifests *menu.ManifestService, logger *zap.Logger) *ManifestHandler {
	return &ManifestHandler{
		manifests: manifests,
		logger:    logger,
	}
}

// RegisterRoutes registers manifest routes
func (h *ManifestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/manifest/:slug", h.GetManifest)
}

// GetManifest returns the manifest for a store slug. The response is
// the raw manifest document, and the 404 body shape is a compatibility
// contract with the installed storefronts.
func (h *ManifestHandler) GetManifest(c *gin.Context) {
	slug := c.Param("slug")

	manifest, err := h.manifests.BuildManifest(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		h.logger.Error("Failed to build manifest",
			zap.String("slug", slug),
			zap.Error(err))
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, manifest)
}
