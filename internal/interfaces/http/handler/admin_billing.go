package handler

import (
	"net/http"

	appbilling "github.com/colaai/backend/internal/application/billing"
	"github.com/colaai/backend/internal/domain/identity"
	"github.com/colaai/backend/internal/interfaces/http/dto"
	"github.com/colaai/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BillingCustomerResponse is the admin-facing view of a billing customer
type BillingCustomerResponse struct {
	CustomerID string `json:"customer_id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
}

// AdminBillingHandler exposes platform-admin billing operations.
type AdminBillingHandler struct {
	BaseHandler
	accounts *appbilling.AccountService
	logger   *zap.Logger
}

// NewAdminBillingHandler creates a new AdminBillingHandler
func NewAdminBillingHandler(accounts *appbilling.AccountService, logger *zap.Logger) *AdminBillingHandler {
	return &AdminBillingHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// RegisterRoutes registers admin billing routes
func (h *AdminBillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/tenants/:id/billing-customer", h.EnsureBillingCustomer)
}

// EnsureBillingCustomer resolves the billing-provider customer for a
// tenant and links it to the tenant record.
func (h *AdminBillingHandler) EnsureBillingCustomer(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	if session.Role != identity.RoleAdmin {
		h.Forbidden(c, "Admin access required")
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid tenant id")
		return
	}

	customer, err := h.accounts.EnsureBillingCustomer(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, BillingCustomerResponse{
		CustomerID: customer.ID,
		Email:      customer.Email,
		Name:       customer.Name,
	})
}
