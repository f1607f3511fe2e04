package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appbilling "github.com/colaai/backend/internal/application/billing"
	"github.com/colaai/backend/internal/infrastructure/billing"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"go.uber.org/zap"
)

const webhookTestSecret = "whsec_handler_test"

func webhookSignature(payload []byte) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(webhookTestSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func newWebhookTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	service := appbilling.NewWebhookService(appbilling.WebhookServiceConfig{
		Config: &billing.StripeConfig{
			SecretKey:     "sk_test_abc",
			WebhookSecret: webhookTestSecret,
			IsTestMode:    true,
		},
		TenantRepo: newFakeTenantRepo(),
		Notifier:   nil,
		Logger:     zap.NewNop(),
	})
	return newTestRouter(nil, NewStripeWebhookHandler(service, zap.NewNop()))
}

func TestStripeWebhookHandler_HandleWebhook(t *testing.T) {
	payload := []byte(`{"id":"evt_1","api_version":"` + stripe.APIVersion + `","type":"customer.updated","data":{"object":{}}}`)

	t.Run("accepts signed event", func(t *testing.T) {
		engine := newWebhookTestEngine(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", bytes.NewReader(payload))
		req.Header.Set("Stripe-Signature", webhookSignature(payload))
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "evt_1")
	})

	t.Run("rejects missing signature", func(t *testing.T) {
		engine := newWebhookTestEngine(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", bytes.NewReader(payload))
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects bad signature", func(t *testing.T) {
		engine := newWebhookTestEngine(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", bytes.NewReader(payload))
		req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
	})
}
