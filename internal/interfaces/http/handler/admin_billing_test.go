package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	appbilling "github.com/colaai/backend/internal/application/billing"
	"github.com/colaai/backend/internal/domain/identity"
	"github.com/colaai/backend/internal/domain/tenant"
	"github.com/colaai/backend/internal/infrastructure/billing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCustomerAPI struct {
	created int
}

func (s *stubCustomerAPI) SearchByTenantID(ctx context.Context, tenantID uuid.UUID) ([]billing.Customer, error) {
	return nil, nil
}

func (s *stubCustomerAPI) Get(ctx context.Context, customerID string) (*billing.Customer, error) {
	return nil, nil
}

func (s *stubCustomerAPI) Create(ctx context.Context, input billing.CreateCustomerInput) (*billing.Customer, error) {
	s.created++
	return &billing.Customer{ID: "cus_123", Email: input.Email, Name: input.Name}, nil
}

func newBillingTestSetup(t *testing.T, tn *tenant.Tenant) (*appbilling.AccountService, *stubCustomerAPI) {
	t.Helper()
	api := &stubCustomerAPI{}
	resolver := appbilling.NewCustomerResolver(api, zap.NewNop())
	return appbilling.NewAccountService(resolver, newFakeTenantRepo(tn), zap.NewNop()), api
}

func TestAdminBillingHandler_EnsureBillingCustomer(t *testing.T) {
	tn, err := tenant.New("Burger House", "owner@burger.com")
	require.NoError(t, err)

	adminSession := &identity.Session{UserID: uuid.New(), Email: "admin@colaai.com", EmailVerified: true, Role: identity.RoleAdmin}

	t.Run("creates and links billing customer", func(t *testing.T) {
		accounts, api := newBillingTestSetup(t, tn)
		engine := newTestRouter(adminSession, NewAdminBillingHandler(accounts, zap.NewNop()))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/tenants/"+tn.ID.String()+"/billing-customer", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "cus_123")
		assert.Equal(t, 1, api.created)
	})

	t.Run("rejects malformed tenant id", func(t *testing.T) {
		accounts, _ := newBillingTestSetup(t, tn)
		engine := newTestRouter(adminSession, NewAdminBillingHandler(accounts, zap.NewNop()))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/tenants/not-a-uuid/billing-customer", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("requires admin role", func(t *testing.T) {
		accounts, api := newBillingTestSetup(t, tn)
		owner := &identity.Session{UserID: uuid.New(), Email: "owner@burger.com", EmailVerified: true, Role: identity.RoleOwner}
		engine := newTestRouter(owner, NewAdminBillingHandler(accounts, zap.NewNop()))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/tenants/"+tn.ID.String()+"/billing-customer", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Zero(t, api.created)
	})

	t.Run("requires authentication", func(t *testing.T) {
		accounts, _ := newBillingTestSetup(t, tn)
		engine := newTestRouter(nil, NewAdminBillingHandler(accounts, zap.NewNop()))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/tenants/"+tn.ID.String()+"/billing-customer", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		accounts, _ := newBillingTestSetup(t, tn)
		engine := newTestRouter(adminSession, NewAdminBillingHandler(accounts, zap.NewNop()))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/tenants/"+uuid.NewString()+"/billing-customer", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
