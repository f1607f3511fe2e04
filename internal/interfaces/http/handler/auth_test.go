package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appidentity "github.com/colaai/backend/internal/application/identity"
	"github.com/colaai/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTokenIssuer struct{}

func (f *fakeTokenIssuer) GenerateToken(user *identity.User) (string, time.Time, error) {
	return "token-" + user.Email, time.Now().Add(time.Hour), nil
}

func TestAuthHandler_Login(t *testing.T) {
	user, err := identity.NewUser(uuid.New(), "owner@store.com", "Owner", "s3cret-pass")
	require.NoError(t, err)

	userService := appidentity.NewUserService(&fakeUserRepo{users: []identity.User{*user}}, &fakeTokenIssuer{}, zap.NewNop())
	engine := newTestRouter(nil, NewAuthHandler(userService, zap.NewNop()))

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)
		return w
	}

	t.Run("valid credentials", func(t *testing.T) {
		w := post(`{"email":"owner@store.com","password":"s3cret-pass"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "token-owner@store.com")
		assert.Contains(t, w.Body.String(), `"role":"owner"`)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := post(`{"email":"owner@store.com","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := post(`{"email":"nobody@store.com","password":"s3cret-pass"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := post(`{"email":"owner@store.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
