package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "garage")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "garagetrack")
	t.Setenv("SESSION_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "postgres", cfg.DB.Driver)
	require.Equal(t, 5432, cfg.DB.Port)
	require.Equal(t, "disable", cfg.DB.SSLMode)
	require.Equal(t, 10, cfg.BcryptCost)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.False(t, cfg.AllowLegacyPasswords)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_HOST", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DB_HOST")
}

func TestLoadMissingSessionSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_PORT", "6543")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("ALLOW_LEGACY_PASSWORDS", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 6543, cfg.DB.Port)
	require.Equal(t, 12, cfg.BcryptCost)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.True(t, cfg.AllowLegacyPasswords)
	require.Equal(t, "debug", cfg.LogLevel)
}
