package handler

import (
	"net/http"

	"github.com/colaai/backend/internal/application/notification"
	"github.com/colaai/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NotifyPaymentRequest is the body of POST /pix/notify-payment
type NotifyPaymentRequest struct {
	PlanType        string          `json:"planType"`
	Amount          decimal.Decimal `json:"amount"`
	BillingPeriod   string          `json:"billingPeriod"`
	SubscriptionRef string          `json:"subscriptionRef,omitempty"`
}

// PaymentNotifyHandler forwards manual payment confirmations to the
// platform operator.
type PaymentNotifyHandler struct {
	BaseHandler
	dispatcher *notification.Dispatcher
	logger     *zap.Logger
}

// NewPaymentNotifyHandler creates a new PaymentNotifyHandler
func NewPaymentNotifyHandler(dispatcher *notification.Dispatcher, logger *zap.Logger) *PaymentNotifyHandler {
	return &PaymentNotifyHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterRoutes registers payment notification routes
func (h *PaymentNotifyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/pix/notify-payment", h.NotifyPayment)
}

// NotifyPayment alerts the operator about a subscription payment. The
// caller must be authenticated with a verified email.
func (h *PaymentNotifyHandler) NotifyPayment(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil || session.Email == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}
	if !session.EmailVerified {
		h.Unauthorized(c, "A verified email is required")
		return
	}

	var req NotifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	if req.PlanType == "" {
		h.BadRequest(c, "planType is required")
		return
	}
	if !req.Amount.IsPositive() {
		h.BadRequest(c, "amount must be positive")
		return
	}

	err := h.dispatcher.NotifyOperatorOfPayment(c.Request.Context(), notification.PaymentAlert{
		TenantEmail:     session.Email,
		PlanType:        req.PlanType,
		Amount:          req.Amount,
		BillingPeriod:   req.BillingPeriod,
		SubscriptionRef: req.SubscriptionRef,
	})
	if err != nil {
		h.logger.Error("Payment notification failed",
			zap.String("email", session.Email),
			zap.Error(err))
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Operator notified",
	})
}
