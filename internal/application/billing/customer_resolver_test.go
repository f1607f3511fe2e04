package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/colaai/backend/internal/domain/shared"
	"github.com/colaai/backend/internal/infrastructure/billing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCustomerAPI struct {
	searchResults []billing.Customer
	searchErr     error
	getResult     *billing.Customer
	getErr        error
	createErr     error

	searchCalls int
	getCalls    int
	createCalls int
	lastCreate  billing.CreateCustomerInput
}

func (f *fakeCustomerAPI) SearchByTenantID(ctx context.Context, tenantID uuid.UUID) ([]billing.Customer, error) {
	f.searchCalls++
	return f.searchResults, f.searchErr
}

func (f *fakeCustomerAPI) Get(ctx context.Context, customerID string) (*billing.Customer, error) {
	f.getCalls++
	return f.getResult, f.getErr
}

func (f *fakeCustomerAPI) Create(ctx context.Context, input billing.CreateCustomerInput) (*billing.Customer, error) {
	f.createCalls++
	f.lastCreate = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &billing.Customer{
		ID:       "cus_new",
		Email:    input.Email,
		Name:     input.Name,
		Metadata: map[string]string{"tenant_id": input.TenantID.String()},
	}, nil
}

func TestCustomerResolver_Resolve(t *testing.T) {
	tenantID := uuid.New()
	ctx := context.Background()

	t.Run("returns live customer from search", func(t *testing.T) {
		api := &fakeCustomerAPI{
			searchResults: []billing.Customer{{ID: "cus_live"}},
			getResult:     &billing.Customer{ID: "cus_live", Email: "owner@store.com"},
		}
		resolver := NewCustomerResolver(api, zap.NewNop())

		cust, err := resolver.Resolve(ctx, tenantID, "owner@store.com", "Joe")
		require.NoError(t, err)
		assert.Equal(t, "cus_live", cust.ID)
		assert.Equal(t, 1, api.getCalls)
		assert.Zero(t, api.createCalls)
	})

	t.Run("creates when no match", func(t *testing.T) {
		api := &fakeCustomerAPI{}
		resolver := NewCustomerResolver(api, zap.NewNop())

		cust, err := resolver.Resolve(ctx, tenantID, "owner@store.com", "Joe")
		require.NoError(t, err)
		assert.Equal(t, "cus_new", cust.ID)
		assert.Equal(t, 1, api.createCalls)
		assert.Equal(t, tenantID, api.lastCreate.TenantID)
		assert.Equal(t, "owner@store.com", api.lastCreate.Email)
	})

	t.Run("deleted customer counts as no match", func(t *testing.T) {
		api := &fakeCustomerAPI{
			searchResults: []billing.Customer{{ID: "cus_gone"}},
			getResult:     &billing.Customer{ID: "cus_gone", Deleted: true},
		}
		resolver := NewCustomerResolver(api, zap.NewNop())

		cust, err := resolver.Resolve(ctx, tenantID, "owner@store.com", "")
		require.NoError(t, err)
		assert.Equal(t, "cus_new", cust.ID)
		assert.Equal(t, 1, api.createCalls)
	})

	t.Run("unreachable customer counts as no match", func(t *testing.T) {
		api := &fakeCustomerAPI{
			searchResults: []billing.Customer{{ID: "cus_stale"}},
			getErr:        errors.New("no such customer"),
		}
		resolver := NewCustomerResolver(api, zap.NewNop())

		cust, err := resolver.Resolve(ctx, tenantID, "owner@store.com", "")
		require.NoError(t, err)
		assert.Equal(t, "cus_new", cust.ID)
	})

	t.Run("search failure propagates", func(t *testing.T) {
		api := &fakeCustomerAPI{searchErr: errors.New("stripe down")}
		resolver := NewCustomerResolver(api, zap.NewNop())

		_, err := resolver.Resolve(ctx, tenantID, "owner@store.com", "")
		assert.ErrorContains(t, err, "stripe down")
		assert.Zero(t, api.createCalls)
	})

	t.Run("create failure propagates", func(t *testing.T) {
		api := &fakeCustomerAPI{createErr: errors.New("stripe down")}
		resolver := NewCustomerResolver(api, zap.NewNop())

		_, err := resolver.Resolve(ctx, tenantID, "owner@store.com", "")
		assert.ErrorContains(t, err, "stripe down")
	})

	t.Run("empty email rejected without provider calls", func(t *testing.T) {
		api := &fakeCustomerAPI{}
		resolver := NewCustomerResolver(api, zap.NewNop())

		_, err := resolver.Resolve(ctx, tenantID, "  ", "")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		assert.Zero(t, api.searchCalls)
	})
}
