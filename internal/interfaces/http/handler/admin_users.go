package handler

import (
	"net/http"
	"time"

	appidentity "github.com/colaai/backend/internal/application/identity"
	"github.com/colaai/backend/internal/domain/identity"
	"github.com/colaai/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PartialResultHeader signals that the response body is incomplete
// because a backend call failed. The body shape (always an array) is a
// compatibility contract with the admin console.
const PartialResultHeader = "X-Partial-Result"

// UserRecord is the admin-facing view of a user
type UserRecord struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	DisplayName   string     `json:"display_name"`
	Role          string     `json:"role"`
	EmailVerified bool       `json:"email_verified"`
	TenantID      *string    `json:"tenant_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

// AdminUsersHandler exposes platform-admin user queries.
type AdminUsersHandler struct {
	BaseHandler
	users  *appidentity.UserService
	logger *zap.Logger
}

// NewAdminUsersHandler creates a new AdminUsersHandler
func NewAdminUsersHandler(users *appidentity.UserService, logger *zap.Logger) *AdminUsersHandler {
	return &AdminUsersHandler{
		users:  users,
		logger: logger,
	}
}

// RegisterRoutes registers admin routes
func (h *AdminUsersHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/users", h.ListUsers)
}

// ListUsers returns all platform users. On a listing failure it logs,
// returns an empty array and flags the degradation via header, so old
// consumers keep working while new ones can detect the failure.
func (h *AdminUsersHandler) ListUsers(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	if session.Role != identity.RoleAdmin {
		h.Forbidden(c, "Admin access required")
		return
	}

	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("User listing degraded to empty result", zap.Error(err))
		c.Header(PartialResultHeader, "true")
		c.JSON(http.StatusOK, []UserRecord{})
		return
	}

	records := make([]UserRecord, len(users))
	for i, u := range users {
		records[i] = toUserRecord(&u)
	}
	c.JSON(http.StatusOK, records)
}

func toUserRecord(u *identity.User) UserRecord {
	record := UserRecord{
		ID:            u.ID.String(),
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		LastLoginAt:   u.LastLoginAt,
	}
	if u.TenantID != nil {
		id := u.TenantID.String()
		record.TenantID = &id
	}
	return record
}
