package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/colaai/backend/internal/application/notification"
	"github.com/colaai/backend/internal/domain/tenant"
	"github.com/colaai/backend/internal/infrastructure/billing"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
)

// OperatorNotifier is the slice of the notification dispatcher the
// webhook pathway needs.
type OperatorNotifier interface {
	NotifyOperatorOfPayment(ctx context.Context, alert notification.PaymentAlert) error
}

// WebhookService verifies and processes payment-provider webhook events.
type WebhookService struct {
	config     *billing.StripeConfig
	tenantRepo tenant.Repository
	notifier   OperatorNotifier
	logger     *zap.Logger
}

// WebhookServiceConfig contains the dependencies of WebhookService
type WebhookServiceConfig struct {
	Config     *billing.StripeConfig
	TenantRepo tenant.Repository
	Notifier   OperatorNotifier
	Logger     *zap.Logger
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(cfg WebhookServiceConfig) *WebhookService {
	return &WebhookService{
		config:     cfg.Config,
		tenantRepo: cfg.TenantRepo,
		notifier:   cfg.Notifier,
		logger:     cfg.Logger,
	}
}

// WebhookResult contains the result of processing a webhook
type WebhookResult struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Processed bool   `json:"processed"`
	Message   string `json:"message,omitempty"`
}

// ProcessWebhook verifies the signature and dispatches the event.
func (s *WebhookService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.config.WebhookSecret)
	if err != nil {
		s.logger.Error("Failed to verify webhook signature", zap.Error(err))
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	s.logger.Info("Processing webhook event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))

	result := &WebhookResult{
		EventID:   event.ID,
		EventType: string(event.Type),
		Processed: true,
	}

	switch event.Type {
	case "invoice.paid":
		err = s.handleInvoicePaid(ctx, event)
	case "customer.subscription.deleted":
		err = s.handleSubscriptionDeleted(ctx, event)
	default:
		s.logger.Debug("Unhandled webhook event type",
			zap.String("event_type", string(event.Type)))
		result.Message = "Event type not handled"
	}

	if err != nil {
		s.logger.Error("Failed to process webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		result.Processed = false
		result.Message = err.Error()
		return result, err
	}

	return result, nil
}

// handleInvoicePaid links the paid invoice back to its tenant and fires
// the operator payment alert.
func (s *WebhookService) handleInvoicePaid(ctx context.Context, event stripe.Event) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return fmt.Errorf("failed to unmarshal invoice: %w", err)
	}

	customerID := ""
	if invoice.Customer != nil {
		customerID = invoice.Customer.ID
	}
	if customerID == "" {
		s.logger.Warn("Invoice has no customer id, skipping",
			zap.String("invoice_id", invoice.ID))
		return nil
	}

	tn, err := s.tenantRepo.FindByStripeCustomerID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to find tenant for customer %s: %w", customerID, err)
	}

	subscriptionRef := ""
	if invoice.Subscription != nil {
		subscriptionRef = invoice.Subscription.ID
	}

	alert := notification.PaymentAlert{
		TenantEmail:     tn.ContactEmail,
		PlanType:        string(tn.Plan),
		Amount:          decimal.NewFromInt(invoice.AmountPaid).Div(decimal.NewFromInt(100)),
		BillingPeriod:   billingPeriodFromInvoice(&invoice),
		SubscriptionRef: subscriptionRef,
	}

	return s.notifier.NotifyOperatorOfPayment(ctx, alert)
}

// handleSubscriptionDeleted suspends the tenant when its subscription
// is cancelled upstream.
func (s *WebhookService) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to unmarshal subscription: %w", err)
	}

	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}
	if customerID == "" {
		s.logger.Warn("Subscription has no customer id, skipping",
			zap.String("subscription_id", sub.ID))
		return nil
	}

	tn, err := s.tenantRepo.FindByStripeCustomerID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to find tenant for customer %s: %w", customerID, err)
	}

	if err := tn.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend tenant %s: %w", tn.ID, err)
	}
	if err := s.tenantRepo.Save(ctx, tn); err != nil {
		return fmt.Errorf("failed to save tenant %s: %w", tn.ID, err)
	}

	s.logger.Info("Suspended tenant after subscription cancellation",
		zap.String("tenant_id", tn.ID.String()),
		zap.String("subscription_id", sub.ID))
	return nil
}

func billingPeriodFromInvoice(invoice *stripe.Invoice) string {
	if invoice.Lines != nil {
		for _, line := range invoice.Lines.Data {
			if line.Price != nil && line.Price.Recurring != nil {
				if line.Price.Recurring.Interval == stripe.PriceRecurringIntervalYear {
					return "annual"
				}
				return "monthly"
			}
		}
	}
	return "monthly"
}
