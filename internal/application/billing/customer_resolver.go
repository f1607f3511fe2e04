package billing

import (
	"context"
	"strings"

	"github.com/colaai/backend/internal/domain/shared"
	"github.com/colaai/backend/internal/infrastructure/billing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerResolver finds or creates the billing customer for a tenant.
//
// Resolution is idempotent for live customers. There is no per-tenant
// lock, so two concurrent first-time resolutions can both create a
// customer; the provider-side metadata keeps them attributable and the
// duplicate is harmless.
type CustomerResolver struct {
	api    billing.CustomerAPI
	logger *zap.Logger
}

// NewCustomerResolver creates a new CustomerResolver
func NewCustomerResolver(api billing.CustomerAPI, logger *zap.Logger) *CustomerResolver {
	return &CustomerResolver{
		api:    api,
		logger: logger,
	}
}

// Resolve returns the live billing customer for the tenant, creating
// one when none exists. A search hit that turns out to be deleted or
// unreachable on re-fetch counts as no match.
func (r *CustomerResolver) Resolve(ctx context.Context, tenantID uuid.UUID, email, name string) (*billing.Customer, error) {
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Email is required to resolve a billing customer")
	}

	matches, err := r.api.SearchByTenantID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if len(matches) > 0 {
		// Search results can be stale; only a successful re-fetch of a
		// non-deleted customer counts as a match.
		existing, err := r.api.Get(ctx, matches[0].ID)
		switch {
		case err != nil:
			r.logger.Warn("Billing customer from search is unreachable, creating a new one",
				zap.String("tenant_id", tenantID.String()),
				zap.String("customer_id", matches[0].ID),
				zap.Error(err))
		case existing.Deleted:
			r.logger.Warn("Billing customer from search is deleted, creating a new one",
				zap.String("tenant_id", tenantID.String()),
				zap.String("customer_id", existing.ID))
		default:
			r.logger.Debug("Resolved existing billing customer",
				zap.String("tenant_id", tenantID.String()),
				zap.String("customer_id", existing.ID))
			return existing, nil
		}
	}

	created, err := r.api.Create(ctx, billing.CreateCustomerInput{
		TenantID: tenantID,
		Email:    email,
		Name:     name,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Created billing customer for tenant",
		zap.String("tenant_id", tenantID.String()),
		zap.String("customer_id", created.ID))
	return created, nil
}
