package menu

import (
	"context"

	"github.com/colaai/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

// Defaults used when a tenant has not customized its branding. The
// synthesizer never emits an empty name.
const (
	defaultStoreName   = "Cola Aí"
	defaultDescription = "Digital menu"
	defaultThemeColor  = "#e11d48"
	defaultBackground  = "#ffffff"
	defaultIconSmall   = "/icons/icon-192.png"
	defaultIconLarge   = "/icons/icon-512.png"
)

// ManifestIcon is one icon entry of a web-app manifest.
type ManifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

// Manifest is the installable-app descriptor served to the storefront.
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []ManifestIcon `json:"icons"`
}

// ManifestService synthesizes web-app manifests from tenant branding.
type ManifestService struct {
	tenants tenant.Repository
	logger  *zap.Logger
}

// NewManifestService creates a new ManifestService
func NewManifestService(tenants tenant.Repository, logger *zap.Logger) *ManifestService {
	return &ManifestService{
		tenants: tenants,
		logger:  logger,
	}
}

// BuildManifest returns the manifest for the tenant behind the slug, or
// shared.ErrNotFound when no tenant owns it.
func (s *ManifestService) BuildManifest(ctx context.Context, slug string) (*Manifest, error) {
	tn, err := s.tenants.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	name := tn.Branding.StoreName
	if name == "" {
		name = defaultStoreName
	}

	description := tn.Branding.Description
	if description == "" {
		description = defaultDescription
	}

	themeColor := tn.Branding.PrimaryColor
	if themeColor == "" {
		themeColor = defaultThemeColor
	}

	iconSmall := tn.Branding.LogoURL
	iconLarge := tn.Branding.LogoURL
	if tn.Branding.LogoURL == "" {
		iconSmall = defaultIconSmall
		iconLarge = defaultIconLarge
	}

	return &Manifest{
		Name:            name,
		ShortName:       name,
		Description:     description,
		StartURL:        "/menu/" + tn.PublicSlug,
		Display:         "standalone",
		BackgroundColor: defaultBackground,
		ThemeColor:      themeColor,
		Icons: []ManifestIcon{
			{Src: iconSmall, Sizes: "192x192", Type: "image/png"},
			{Src: iconLarge, Sizes: "512x512", Type: "image/png"},
			{Src: iconLarge, Sizes: "512x512", Type: "image/png", Purpose: "maskable"},
		},
	}, nil
}
