package notification

import (
	"context"
	"fmt"
	"net/http"

	appnotification "github.com/colaai/backend/internal/application/notification"
	"github.com/colaai/backend/internal/infrastructure/config"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type pushRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	URL    string `json:"url,omitempty"`
}

type pushResponse struct {
	ID        string `json:"id"`
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}

// PushClient talks to the push provider's HTTP API. Dispatch semantics
// forbid retries, so the client makes exactly one request per send.
type PushClient struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewPushClient creates a new push provider client
func NewPushClient(cfg config.PushConfig, logger *zap.Logger) *PushClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &PushClient{
		http:   client,
		logger: logger,
	}
}

// Send delivers a push message and returns the provider outcome.
func (c *PushClient) Send(ctx context.Context, msg appnotification.PushMessage) (*appnotification.DeliveryResult, error) {
	var result pushResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(pushRequest{
			UserID: msg.UserID,
			Title:  msg.Title,
			Body:   msg.Body,
			URL:    msg.URL,
		}).
		SetResult(&result).
		SetError(&result).
		Post("/notifications")
	if err != nil {
		c.logger.Error("Push provider request failed",
			zap.String("user_id", msg.UserID),
			zap.Error(err))
		return nil, fmt.Errorf("push provider request failed: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		c.logger.Warn("Push provider rejected message",
			zap.String("user_id", msg.UserID),
			zap.Int("status", resp.StatusCode()),
			zap.String("error", result.Error))
		return nil, fmt.Errorf("push provider returned %d: %s", resp.StatusCode(), result.Error)
	}

	return &appnotification.DeliveryResult{
		Delivered:  result.Delivered,
		ProviderID: result.ID,
		Detail:     result.Error,
	}, nil
}
