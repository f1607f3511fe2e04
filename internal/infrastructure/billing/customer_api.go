package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/customer"
	"go.uber.org/zap"
)

// Customer is the provider-neutral view of a billing customer.
type Customer struct {
	ID       string
	Email    string
	Name     string
	Deleted  bool
	Metadata map[string]string
}

// CreateCustomerInput carries the data needed to create a billing customer.
type CreateCustomerInput struct {
	TenantID uuid.UUID
	Email    string
	Name     string
	Metadata map[string]string
}

// CustomerAPI abstracts the billing provider's customer operations so
// application services can be tested against a fake.
type CustomerAPI interface {
	// SearchByTenantID returns customers whose metadata links them to the tenant.
	SearchByTenantID(ctx context.Context, tenantID uuid.UUID) ([]Customer, error)

	// Get fetches a customer by its provider id. Deleted customers are
	// returned with Deleted set, not as an error.
	Get(ctx context.Context, customerID string) (*Customer, error)

	// Create creates a new customer tagged with the tenant id.
	Create(ctx context.Context, input CreateCustomerInput) (*Customer, error)
}

// StripeCustomerAPI implements CustomerAPI against the Stripe API.
type StripeCustomerAPI struct {
	config *StripeConfig
	logger *zap.Logger
}

// NewStripeCustomerAPI creates a new Stripe-backed customer API
func NewStripeCustomerAPI(config *StripeConfig, logger *zap.Logger) (*StripeCustomerAPI, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.InitStripeClient()

	return &StripeCustomerAPI{
		config: config,
		logger: logger,
	}, nil
}

// SearchByTenantID searches Stripe for customers carrying the tenant id
// in their metadata.
func (a *StripeCustomerAPI) SearchByTenantID(ctx context.Context, tenantID uuid.UUID) ([]Customer, error) {
	a.logger.Debug("Searching Stripe customers", zap.String("tenant_id", tenantID.String()))

	params := &stripe.CustomerSearchParams{
		SearchParams: stripe.SearchParams{
			Query:   fmt.Sprintf("metadata['tenant_id']:'%s'", tenantID.String()),
			Context: ctx,
		},
	}

	var results []Customer
	iter := customer.Search(params)
	for iter.Next() {
		results = append(results, fromStripeCustomer(iter.Customer()))
	}
	if err := iter.Err(); err != nil {
		a.logger.Error("Failed to search Stripe customers",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to search customers: %w", err)
	}

	return results, nil
}

// Get retrieves a customer from Stripe
func (a *StripeCustomerAPI) Get(ctx context.Context, customerID string) (*Customer, error) {
	a.logger.Debug("Getting Stripe customer", zap.String("customer_id", customerID))

	cust, err := customer.Get(customerID, &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		a.logger.Error("Failed to get Stripe customer",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to get customer: %w", err)
	}

	c := fromStripeCustomer(cust)
	return &c, nil
}

// Create creates a new customer in Stripe tagged with the tenant id
func (a *StripeCustomerAPI) Create(ctx context.Context, input CreateCustomerInput) (*Customer, error) {
	a.logger.Debug("Creating Stripe customer",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("email", input.Email))

	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(input.Email),
		Name:   stripe.String(input.Name),
	}

	params.Metadata = map[string]string{
		"tenant_id": input.TenantID.String(),
	}
	for k, v := range input.Metadata {
		if k != "tenant_id" {
			params.Metadata[k] = v
		}
	}

	cust, err := customer.New(params)
	if err != nil {
		a.logger.Error("Failed to create Stripe customer",
			zap.String("tenant_id", input.TenantID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create customer: %w", err)
	}

	a.logger.Info("Created Stripe customer",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("customer_id", cust.ID))

	c := fromStripeCustomer(cust)
	return &c, nil
}

func fromStripeCustomer(cust *stripe.Customer) Customer {
	return Customer{
		ID:       cust.ID,
		Email:    cust.Email,
		Name:     cust.Name,
		Deleted:  cust.Deleted,
		Metadata: cust.Metadata,
	}
}
