package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

const minimalYAML = `
session:
  jwt_secret: "secret"
gate:
  user_attribute_override: "X-Shib-User"
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "memory", cfg.Session.Flags.Kind)
	assert.Equal(t, "X-CSRF-Token", cfg.CSRF.HeaderName)
	assert.Equal(t, "csrf_token", cfg.CSRF.CookieName)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, time.Hour, cfg.SessionTTL())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	_, err := Load(writeConfig(t, `
gate:
  user_attribute_override: "X-Shib-User"
`))
	assert.ErrorContains(t, err, "jwt_secret")
}

func TestLoadRequiresDSNForPostgres(t *testing.T) {
	_, err := Load(writeConfig(t, `
storage:
  driver: postgres
session:
  jwt_secret: "secret"
gate:
  user_attribute_override: "X-Shib-User"
`))
	assert.ErrorContains(t, err, "dsn")
}

func TestLoadRequiresIdentitySource(t *testing.T) {
	_, err := Load(writeConfig(t, `
session:
  jwt_secret: "secret"
`))
	assert.ErrorContains(t, err, "gate")
}

func TestLoadRejectsBadTTL(t *testing.T) {
	_, err := Load(writeConfig(t, `
session:
  jwt_secret: "secret"
  ttl: "not-a-duration"
gate:
  user_attribute_override: "X-Shib-User"
`))
	assert.Error(t, err)
}
