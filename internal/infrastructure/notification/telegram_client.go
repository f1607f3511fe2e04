package notification

import (
	"context"
	"fmt"
	"net/http"

	"github.com/colaai/backend/internal/infrastructure/config"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const telegramAPIBase = "https://api.telegram.org"

type telegramSendRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// TelegramClient sends operator alerts through the Telegram bot API.
type TelegramClient struct {
	http   *resty.Client
	token  string
	chatID string
	logger *zap.Logger
}

// NewTelegramClient creates a new Telegram operator channel
func NewTelegramClient(cfg config.TelegramConfig, logger *zap.Logger) *TelegramClient {
	return NewTelegramClientWithBaseURL(cfg, telegramAPIBase, logger)
}

// NewTelegramClientWithBaseURL allows overriding the API host in tests.
func NewTelegramClientWithBaseURL(cfg config.TelegramConfig, baseURL string, logger *zap.Logger) *TelegramClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &TelegramClient{
		http:   client,
		token:  cfg.BotToken,
		chatID: cfg.OperatorChatID,
		logger: logger,
	}
}

// SendOperatorMessage posts a plain-text message to the operator chat.
// One request per call, no retry.
func (c *TelegramClient) SendOperatorMessage(ctx context.Context, text string) error {
	var result telegramResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(telegramSendRequest{
			ChatID: c.chatID,
			Text:   text,
		}).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/bot%s/sendMessage", c.token))
	if err != nil {
		c.logger.Error("Telegram request failed", zap.Error(err))
		return fmt.Errorf("telegram request failed: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest || !result.OK {
		c.logger.Warn("Telegram rejected message",
			zap.Int("status", resp.StatusCode()),
			zap.String("description", result.Description))
		return fmt.Errorf("telegram returned %d: %s", resp.StatusCode(), result.Description)
	}

	return nil
}
