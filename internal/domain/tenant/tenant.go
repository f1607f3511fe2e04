package tenant

import (
	"strings"
	"time"

	"github.com/colaai/backend/internal/domain/shared"
)

// Status represents the lifecycle status of a tenant
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended" // Suspended due to payment issues
	StatusTrial     Status = "trial"
)

// Plan represents the subscription plan of a tenant
type Plan string

const (
	PlanFree  Plan = "free"
	PlanBasic Plan = "basic"
	PlanPro   Plan = "pro"
)

// Branding holds the customer-facing presentation settings of a tenant.
// These fields feed the public menu and the installable-app manifest.
type Branding struct {
	StoreName    string `json:"store_name"`
	Description  string `json:"description"`
	LogoURL      string `json:"logo_url"`
	PrimaryColor string `json:"primary_color"`
}

// Tenant represents a business account in the multi-tenant system.
// It is the aggregate root for store management operations.
type Tenant struct {
	shared.BaseEntity
	PublicSlug           string   `gorm:"type:varchar(60);not null;uniqueIndex"`
	Status               Status   `gorm:"type:varchar(20);not null;default:'active'"`
	Plan                 Plan     `gorm:"type:varchar(20);not null;default:'free'"`
	ContactEmail         string   `gorm:"type:varchar(200)"`
	Branding             Branding `gorm:"embedded;embeddedPrefix:branding_"`
	StripeCustomerID     string   `gorm:"type:varchar(100);index"`
	StripeSubscriptionID string   `gorm:"type:varchar(100)"`
	TrialEndsAt          *time.Time
	ExpiresAt            *time.Time `gorm:"index"` // Subscription expiry date
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// New creates a new tenant with a slug derived from the store name
func New(storeName, contactEmail string) (*Tenant, error) {
	if err := validateStoreName(storeName); err != nil {
		return nil, err
	}

	slug := Slugify(storeName)
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	return &Tenant{
		BaseEntity:   shared.NewBaseEntity(),
		PublicSlug:   slug,
		Status:       StatusActive,
		Plan:         PlanFree,
		ContactEmail: strings.ToLower(strings.TrimSpace(contactEmail)),
		Branding:     Branding{StoreName: storeName},
	}, nil
}

// NewTrial creates a new tenant in trial status
func NewTrial(storeName, contactEmail string, trialDays int) (*Tenant, error) {
	if trialDays <= 0 {
		return nil, shared.NewDomainError("INVALID_TRIAL_DAYS", "Trial days must be positive")
	}

	t, err := New(storeName, contactEmail)
	if err != nil {
		return nil, err
	}

	t.Status = StatusTrial
	trialEnds := time.Now().AddDate(0, 0, trialDays)
	t.TrialEndsAt = &trialEnds

	return t, nil
}

// SetSlug replaces the tenant's public slug.
// Callers must check slug uniqueness via the repository before saving.
func (t *Tenant) SetSlug(slug string) error {
	if err := ValidateSlug(slug); err != nil {
		return err
	}
	t.PublicSlug = slug
	t.UpdatedAt = time.Now()
	return nil
}

// UpdateBranding updates the customer-facing presentation settings
func (t *Tenant) UpdateBranding(b Branding) error {
	if err := validateStoreName(b.StoreName); err != nil {
		return err
	}
	if b.LogoURL != "" && len(b.LogoURL) > 500 {
		return shared.NewDomainError("INVALID_URL", "Logo URL cannot exceed 500 characters")
	}
	if b.PrimaryColor != "" && !isHexColor(b.PrimaryColor) {
		return shared.NewDomainError("INVALID_COLOR", "Primary color must be a hex color like #1a2b3c")
	}

	t.Branding = b
	t.UpdatedAt = time.Now()
	return nil
}

// SetStripeCustomerID links the tenant to its billing-provider customer record
func (t *Tenant) SetStripeCustomerID(customerID string) {
	t.StripeCustomerID = customerID
	t.UpdatedAt = time.Now()
}

// SetStripeSubscriptionID links the tenant to its billing-provider subscription
func (t *Tenant) SetStripeSubscriptionID(subscriptionID string) {
	t.StripeSubscriptionID = subscriptionID
	t.UpdatedAt = time.Now()
}

// SetPlan sets the tenant's subscription plan
func (t *Tenant) SetPlan(plan Plan) error {
	switch plan {
	case PlanFree, PlanBasic, PlanPro:
	default:
		return shared.NewDomainError("INVALID_PLAN", "Invalid tenant plan")
	}

	t.Plan = plan
	t.UpdatedAt = time.Now()

	// Upgrading from trial clears trial status
	if t.Status == StatusTrial && plan != PlanFree {
		t.Status = StatusActive
		t.TrialEndsAt = nil
	}

	return nil
}

// SetExpiration sets the subscription expiration date
func (t *Tenant) SetExpiration(expiresAt time.Time) {
	t.ExpiresAt = &expiresAt
	t.UpdatedAt = time.Now()
}

// Suspend suspends the tenant (e.g., after repeated payment failures).
// Tenants are never hard-deleted.
func (t *Tenant) Suspend() error {
	if t.Status == StatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Tenant is already suspended")
	}
	t.Status = StatusSuspended
	t.UpdatedAt = time.Now()
	return nil
}

// Activate activates the tenant
func (t *Tenant) Activate() error {
	if t.Status == StatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Tenant is already active")
	}
	t.Status = StatusActive
	t.UpdatedAt = time.Now()
	return nil
}

// IsActive returns true if the tenant is active or in a running trial
func (t *Tenant) IsActive() bool {
	if t.Status == StatusActive {
		return true
	}
	return t.Status == StatusTrial && !t.IsTrialExpired()
}

// IsTrialExpired returns true if the trial has expired
func (t *Tenant) IsTrialExpired() bool {
	if t.Status != StatusTrial || t.TrialEndsAt == nil {
		return false
	}
	return time.Now().After(*t.TrialEndsAt)
}

func validateStoreName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Store name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Store name cannot exceed 200 characters")
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}
