package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/colaai/backend/internal/application/menu"
	"github.com/colaai/backend/internal/domain/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManifestHandler_GetManifest(t *testing.T) {
	tn, err := tenant.New("Joe's Grill", "joe@grill.com")
	require.NoError(t, err)

	svc := menu.NewManifestService(newFakeTenantRepo(tn), zap.NewNop())
	engine := newTestRouter(nil, NewManifestHandler(svc, zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/manifest/joes-grill", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var manifest menu.Manifest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &manifest))
	assert.Equal(t, "Joe's Grill", manifest.Name)
	assert.Equal(t, "/menu/joes-grill", manifest.StartURL)
}

func TestManifestHandler_GetManifest_NotFound(t *testing.T) {
	svc := menu.NewManifestService(newFakeTenantRepo(), zap.NewNop())
	engine := newTestRouter(nil, NewManifestHandler(svc, zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/manifest/ghost-store", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Store not found"}`, w.Body.String())
}
