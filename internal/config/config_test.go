package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blizon/ops-dashboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.True(t, cfg.App.SeedData)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, "Admin User", cfg.Auth.AdminName)
	assert.Equal(t, "Administrator", cfg.Auth.AdminRole)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.DebounceInterval())
	assert.Equal(t, 8*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, time.Hour, cfg.Auth.SessionIdleTimeout())
	assert.Equal(t, 7*24*time.Hour, cfg.Jobs.ReminderWindow())
	assert.Equal(t, 50, cfg.Notifications.Limit)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Equal(t, "DENY", cfg.Security.FrameOptions)
	assert.Contains(t, cfg.RateLimit.WhitelistPaths, "/health")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SEARCH_DEBOUNCEMS", "150")
	t.Setenv("SESSION_SIGNING_KEY", "env-key")
	t.Setenv("ADMIN_PASSWORD", "env-password")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.DebounceInterval())
	assert.Equal(t, "env-key", cfg.Auth.SigningKey)
	assert.Equal(t, "env-password", cfg.Auth.AdminPassword)
}

func TestValidate(t *testing.T) {
	base := func() *config.Config {
		cfg, err := config.Load()
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Auth.SigningKey = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Auth.AdminPassword = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Auth.TokenTTLMinutes = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Search.DebounceMs = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadWithSecrets_Development(t *testing.T) {
	cfg, err := config.LoadWithSecrets(context.Background(), zap.NewNop())
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Auth.SigningKey)
}

func TestLoadWithSecrets_ProductionRejectsBuiltInSecrets(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "production")

	_, err := config.LoadWithSecrets(context.Background(), zap.NewNop())
	assert.Error(t, err)

	t.Setenv("SESSION_SIGNING_KEY", "prod-key")
	t.Setenv("ADMIN_PASSWORD", "prod-password")
	cfg, err := config.LoadWithSecrets(context.Background(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "prod-key", cfg.Auth.SigningKey)
}

func TestLoadWithSecrets_VaultRequiresName(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "staging")
	t.Setenv("USE_AZURE_KEY_VAULT", "true")

	_, err := config.LoadWithSecrets(context.Background(), zap.NewNop())
	assert.Error(t, err)
}

type stubSecrets map[string]string

func (s stubSecrets) GetSecretOrEnv(_ context.Context, secretName, _ string) (string, error) {
	if v, ok := s[secretName]; ok {
		return v, nil
	}
	return "", errors.New("missing " + secretName)
}

func TestApplySecrets(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	err = config.ApplySecrets(context.Background(), cfg, stubSecrets{
		"session-signing-key": "vault-key",
		"admin-password":      "vault-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "vault-key", cfg.Auth.SigningKey)
	assert.Equal(t, "vault-password", cfg.Auth.AdminPassword)

	err = config.ApplySecrets(context.Background(), cfg, stubSecrets{"session-signing-key": "k"})
	assert.Error(t, err)
}
