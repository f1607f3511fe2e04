package billing

import (
	"context"

	"github.com/colaai/backend/internal/domain/tenant"
	"github.com/colaai/backend/internal/infrastructure/billing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountService links tenants to their billing-provider customer records.
type AccountService struct {
	resolver *CustomerResolver
	tenants  tenant.Repository
	logger   *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(resolver *CustomerResolver, tenants tenant.Repository, logger *zap.Logger) *AccountService {
	return &AccountService{
		resolver: resolver,
		tenants:  tenants,
		logger:   logger,
	}
}

// EnsureBillingCustomer resolves the billing customer for a tenant and
// persists the customer id on the tenant record. Safe to call repeatedly:
// an existing live customer is reused, not duplicated.
func (s *AccountService) EnsureBillingCustomer(ctx context.Context, tenantID uuid.UUID) (*billing.Customer, error) {
	t, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	customer, err := s.resolver.Resolve(ctx, t.ID, t.ContactEmail, t.Branding.StoreName)
	if err != nil {
		return nil, err
	}

	if t.StripeCustomerID != customer.ID {
		t.SetStripeCustomerID(customer.ID)
		if err := s.tenants.Save(ctx, t); err != nil {
			return nil, err
		}
		s.logger.Info("billing customer linked to tenant",
			zap.String("tenant_id", t.ID.String()),
			zap.String("customer_id", customer.ID),
		)
	}

	return customer, nil
}
