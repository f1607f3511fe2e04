package handler

import (
	"io"
	"net/http"

	"github.com/colaai/backend/internal/application/billing"
	"github.com/colaai/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const signatureHeader = "Stripe-Signature"

// maxWebhookBody bounds the webhook payload size (Stripe's own limit
// is well below this).
const maxWebhookBody = 1 << 20

// StripeWebhookHandler receives payment-provider webhook events.
type StripeWebhookHandler struct {
	BaseHandler
	webhooks *billing.WebhookService
	logger   *zap.Logger
}

// NewStripeWebhookHandler creates a new StripeWebhookHandler
func NewStripeWebhookHandler(webhooks *billing.WebhookService, logger *zap.Logger) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		webhooks: webhooks,
		logger:   logger,
	}
}

// RegisterRoutes registers webhook routes
func (h *StripeWebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/stripe", h.HandleWebhook)
}

// HandleWebhook verifies and processes one webhook delivery.
func (h *StripeWebhookHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	signature := c.GetHeader(signatureHeader)
	if signature == "" {
		h.BadRequest(c, "Missing signature header")
		return
	}

	result, err := h.webhooks.ProcessWebhook(c.Request.Context(), payload, signature)
	if err != nil {
		if result == nil {
			// Signature verification failed before the event was parsed.
			h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "Invalid webhook signature")
			return
		}
		h.logger.Error("Webhook processing failed",
			zap.String("event_id", result.EventID),
			zap.Error(err))
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Webhook processing failed")
		return
	}

	h.Success(c, result)
}
