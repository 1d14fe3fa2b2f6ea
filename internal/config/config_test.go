package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  addr: ":9090"
redis:
  quote_ttl: 1h
rate_limit:
  burst: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/presupuestos")
	t.Setenv("PRESUPUESTOS_LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.QuoteTTL)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, "postgres://u:p@localhost:5432/presupuestos", cfg.Database.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsEmptySecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PRESUPUESTOS_AUTH_JWT_SECRET", "")

	// An empty env value counts as unset for viper, so the default still applies.
	cfg, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
}
