package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/colaai/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PushMessage is a single push notification addressed to a user.
type PushMessage struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	URL    string `json:"url,omitempty"`
}

// DeliveryResult reports what the provider did with a message.
type DeliveryResult struct {
	Delivered  bool   `json:"delivered"`
	ProviderID string `json:"provider_id,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// PushSender delivers push notifications through the provider's API.
type PushSender interface {
	Send(ctx context.Context, msg PushMessage) (*DeliveryResult, error)
}

// OperatorChannel delivers plain-text alerts to the platform operator.
type OperatorChannel interface {
	SendOperatorMessage(ctx context.Context, text string) error
}

// PaymentAlert carries the data for an operator payment notification.
type PaymentAlert struct {
	TenantEmail     string
	PlanType        string
	Amount          decimal.Decimal
	BillingPeriod   string // "annual" or "monthly"
	SubscriptionRef string
}

// Dispatcher routes notifications to their outbound channels. Each call
// makes at most one provider request; there is no retry or queueing.
type Dispatcher struct {
	push     PushSender
	operator OperatorChannel
	logger   *zap.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(push PushSender, operator OperatorChannel, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		push:     push,
		operator: operator,
		logger:   logger,
	}
}

// SendUserPush validates the message and delivers it through the push
// provider. Validation failures never reach the network.
func (d *Dispatcher) SendUserPush(ctx context.Context, userID, title, body, url string) (*DeliveryResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User id is required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Title is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Message body is required")
	}

	result, err := d.push.Send(ctx, PushMessage{
		UserID: userID,
		Title:  title,
		Body:   body,
		URL:    url,
	})
	if err != nil {
		d.logger.Error("Push delivery failed",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, err
	}

	d.logger.Info("Push delivered",
		zap.String("user_id", userID),
		zap.Bool("delivered", result.Delivered))
	return result, nil
}

// NotifyOperatorOfPayment formats a payment alert and sends it once
// through the operator channel.
func (d *Dispatcher) NotifyOperatorOfPayment(ctx context.Context, alert PaymentAlert) error {
	if strings.TrimSpace(alert.PlanType) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Plan type is required")
	}
	if !alert.Amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Amount must be positive")
	}

	text := formatPaymentAlert(alert)
	if err := d.operator.SendOperatorMessage(ctx, text); err != nil {
		d.logger.Error("Operator alert failed",
			zap.String("plan", alert.PlanType),
			zap.Error(err))
		return err
	}

	d.logger.Info("Operator alert sent", zap.String("plan", alert.PlanType))
	return nil
}

func formatPaymentAlert(alert PaymentAlert) string {
	period := "Monthly"
	if strings.EqualFold(alert.BillingPeriod, "annual") || strings.EqualFold(alert.BillingPeriod, "yearly") {
		period = "Annual"
	}

	var b strings.Builder
	b.WriteString("New subscription payment\n")
	if alert.TenantEmail != "" {
		fmt.Fprintf(&b, "Tenant: %s\n", alert.TenantEmail)
	}
	fmt.Fprintf(&b, "Plan: %s (%s)\n", alert.PlanType, period)
	fmt.Fprintf(&b, "Amount: %s", alert.Amount.StringFixed(2))
	if ref := redactRef(alert.SubscriptionRef); ref != "" {
		fmt.Fprintf(&b, "\nSubscription: %s", ref)
	}
	return b.String()
}

// redactRef hides all but the last four characters of a subscription
// reference.
func redactRef(ref string) string {
	if ref == "" {
		return ""
	}
	if len(ref) <= 4 {
		return "****" + ref
	}
	return "****" + ref[len(ref)-4:]
}
