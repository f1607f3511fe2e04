package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "colaai-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "colaai", cfg.Database.DBName)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10*time.Second, cfg.Push.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Telegram.Timeout)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("COLAAI_APP_PORT", "9090")
	t.Setenv("COLAAI_STRIPE_SECRET_KEY", "sk_test_abc123")
	t.Setenv("COLAAI_STRIPE_IS_TEST_MODE", "true")
	t.Setenv("COLAAI_PLATFORM_SERVICE_ROLE_KEY", "service-role-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "sk_test_abc123", cfg.Stripe.SecretKey)
	assert.True(t, cfg.Stripe.IsTestMode)
	assert.Equal(t, "service-role-secret", cfg.Platform.ServiceRoleKey)
}

func TestValidate_PoolSettings(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Database.MaxIdleConns = 100
	cfg.Database.MaxOpenConns = 10

	assert.Error(t, cfg.validate())
}

func TestValidate_Production(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.Stripe.SecretKey = "sk_live_abc"
		cfg.Stripe.WebhookSecret = "whsec_abc"
		return cfg
	}

	assert.NoError(t, base().validate())

	cfg := base()
	cfg.JWT.Secret = "short"
	assert.Error(t, cfg.validate())

	cfg = base()
	cfg.Database.SSLMode = "disable"
	assert.Error(t, cfg.validate())

	cfg = base()
	cfg.Stripe.SecretKey = ""
	assert.Error(t, cfg.validate())

	cfg = base()
	cfg.HTTP.CORSAllowOrigins = []string{"*"}
	assert.Error(t, cfg.validate())
}

func TestValidate_StripeKeyMode(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Stripe.SecretKey = "sk_live_abc"
	cfg.Stripe.IsTestMode = true
	assert.Error(t, cfg.validate())

	cfg.Stripe.SecretKey = "sk_test_abc"
	assert.NoError(t, cfg.validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "cola",
		Password: "p@ss/word",
		DBName:   "colaai",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word") // must be escaped
}
