package billing

import (
	"context"
	"testing"

	"github.com/colaai/backend/internal/domain/tenant"
	"github.com/colaai/backend/internal/infrastructure/billing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTenant(t *testing.T) *tenant.Tenant {
	t.Helper()
	tn, err := tenant.New("Pizza do Zé", "ze@pizzaria.com")
	require.NoError(t, err)
	return tn
}

func TestAccountService_EnsureBillingCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("creates customer and links tenant", func(t *testing.T) {
		tn := newTestTenant(t)
		repo := &fakeTenantRepo{byID: map[uuid.UUID]*tenant.Tenant{tn.ID: tn}}
		api := &fakeCustomerAPI{}
		svc := NewAccountService(NewCustomerResolver(api, zap.NewNop()), repo, zap.NewNop())

		cust, err := svc.EnsureBillingCustomer(ctx, tn.ID)
		require.NoError(t, err)
		assert.Equal(t, "cus_new", cust.ID)
		assert.Equal(t, "cus_new", tn.StripeCustomerID)
		require.Len(t, repo.saved, 1)
	})

	t.Run("reuses live customer without re-saving", func(t *testing.T) {
		tn := newTestTenant(t)
		tn.SetStripeCustomerID("cus_live")
		repo := &fakeTenantRepo{byID: map[uuid.UUID]*tenant.Tenant{tn.ID: tn}}
		api := &fakeCustomerAPI{
			searchResults: []billing.Customer{{ID: "cus_live"}},
			getResult:     &billing.Customer{ID: "cus_live", Email: tn.ContactEmail},
		}
		svc := NewAccountService(NewCustomerResolver(api, zap.NewNop()), repo, zap.NewNop())

		cust, err := svc.EnsureBillingCustomer(ctx, tn.ID)
		require.NoError(t, err)
		assert.Equal(t, "cus_live", cust.ID)
		assert.Empty(t, repo.saved)
		assert.Zero(t, api.createCalls)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		repo := &fakeTenantRepo{}
		svc := NewAccountService(NewCustomerResolver(&fakeCustomerAPI{}, zap.NewNop()), repo, zap.NewNop())

		_, err := svc.EnsureBillingCustomer(ctx, uuid.New())
		assert.Error(t, err)
	})
}
