package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/colaai/backend/internal/application/notification"
	"github.com/colaai/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePushSender struct {
	calls int
	last  notification.PushMessage
	err   error
}

func (f *fakePushSender) Send(ctx context.Context, msg notification.PushMessage) (*notification.DeliveryResult, error) {
	f.calls++
	f.last = msg
	if f.err != nil {
		return nil, f.err
	}
	return &notification.DeliveryResult{Delivered: true, ProviderID: "msg-1"}, nil
}

type noopOperator struct{}

func (noopOperator) SendOperatorMessage(ctx context.Context, text string) error { return nil }

func newPushEngine(sender *fakePushSender) *gin.Engine {
	dispatcher := notification.NewDispatcher(sender, noopOperator{}, zap.NewNop())
	return newTestRouter(nil, NewPushHandler(dispatcher, zap.NewNop()))
}

func TestPushHandler_SendPush(t *testing.T) {
	sender := &fakePushSender{}
	engine := newPushEngine(sender)

	body := `{"userId":"user-1","title":"Hi","message":"Your order is ready","url":"/orders/1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/push/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "user-1", sender.last.UserID)
	assert.Equal(t, "Your order is ready", sender.last.Body)
}

func TestPushHandler_SendPush_MissingFields(t *testing.T) {
	sender := &fakePushSender{}
	engine := newPushEngine(sender)

	body := `{"userId":"user-1","title":"","message":"hello"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/push/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, sender.calls, "validation failures make no provider calls")
}

func TestPushHandler_SendPush_ProviderFailure(t *testing.T) {
	sender := &fakePushSender{err: errors.New("provider down")}
	engine := newPushEngine(sender)

	body := `{"userId":"user-1","title":"t","message":"m"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/push/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "provider down", "upstream detail is not leaked")
}

func TestPushHandler_SendTestPush(t *testing.T) {
	sender := &fakePushSender{}
	engine := newPushEngine(sender)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/push/test?userId=user-9", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-9", sender.last.UserID)
	assert.Equal(t, "Test notification", sender.last.Title)
}

func TestPushHandler_SendTestPush_MissingUser(t *testing.T) {
	sender := &fakePushSender{}
	engine := newPushEngine(sender)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/push/test", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, sender.calls)
}
