package menu

import (
	"context"
	"testing"

	"github.com/colaai/backend/internal/domain/shared"
	"github.com/colaai/backend/internal/domain/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManifestService_BuildManifest(t *testing.T) {
	tn, err := tenant.New("Pizza Bella", "owner@pizzabella.com")
	require.NoError(t, err)
	require.NoError(t, tn.UpdateBranding(tenant.Branding{
		StoreName:    "Pizza Bella",
		Description:  "Wood-fired pizza",
		LogoURL:      "https://cdn.example.com/logo.png",
		PrimaryColor: "#336699",
	}))

	svc := NewManifestService(newFakeTenantRepo(tn), zap.NewNop())

	m, err := svc.BuildManifest(context.Background(), "pizza-bella")
	require.NoError(t, err)

	assert.Equal(t, "Pizza Bella", m.Name)
	assert.Equal(t, "Pizza Bella", m.ShortName)
	assert.Equal(t, "Wood-fired pizza", m.Description)
	assert.Equal(t, "/menu/pizza-bella", m.StartURL)
	assert.Equal(t, "standalone", m.Display)
	assert.Equal(t, "#336699", m.ThemeColor)

	require.Len(t, m.Icons, 3)
	assert.Equal(t, "https://cdn.example.com/logo.png", m.Icons[0].Src)
	assert.Equal(t, "512x512", m.Icons[2].Sizes)
	assert.Equal(t, "maskable", m.Icons[2].Purpose)
}

func TestManifestService_BuildManifest_Fallbacks(t *testing.T) {
	tn, err := tenant.New("Bare Store", "owner@bare.com")
	require.NoError(t, err)
	tn.Branding = tenant.Branding{}

	svc := NewManifestService(newFakeTenantRepo(tn), zap.NewNop())

	m, err := svc.BuildManifest(context.Background(), "bare-store")
	require.NoError(t, err)

	assert.Equal(t, "Cola Aí", m.Name, "name must never be empty")
	assert.Equal(t, "Cola Aí", m.ShortName)
	assert.Equal(t, "Digital menu", m.Description)
	assert.Equal(t, defaultThemeColor, m.ThemeColor)
	assert.Equal(t, defaultIconSmall, m.Icons[0].Src)
	assert.Equal(t, defaultIconLarge, m.Icons[1].Src)
}

func TestManifestService_BuildManifest_NotFound(t *testing.T) {
	svc := NewManifestService(newFakeTenantRepo(), zap.NewNop())

	_, err := svc.BuildManifest(context.Background(), "ghost-store")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
