package tenant

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for tenant persistence
type Repository interface {
	// FindByID finds a tenant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindBySlug finds a tenant by its public slug
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)

	// FindByStripeCustomerID finds a tenant by its billing-provider customer id
	FindByStripeCustomerID(ctx context.Context, customerID string) (*Tenant, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, t *Tenant) error

	// ExistsBySlug checks if a tenant with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
