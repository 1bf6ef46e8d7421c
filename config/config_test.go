package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"SERVER_PORT", "GIN_MODE", "BCRYPT_COST", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_FileWithDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
db:
  host: localhost
  user: webauth
  password: secret
  name: webauth
server:
  port: ":9000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, 100*time.Millisecond, cfg.DB.SlowQueryThreshold)
	assert.True(t, cfg.DB.ShouldMigrate())
	assert.Equal(t, ":9000", cfg.Server.Port)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
db:
  host: localhost
  user: webauth
  name: webauth
  auto_migrate: false
auth:
  bcrypt_cost: 12
`)
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.False(t, cfg.DB.ShouldMigrate())
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_SecretsFileFillsPassword(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("DB_PASSWORD")
	path := writeConfig(t, `
db:
  host: localhost
  user: webauth
  name: webauth
`)
	secrets := filepath.Join(filepath.Dir(path), "secrets.env")
	require.NoError(t, os.WriteFile(secrets, []byte("DB_PASSWORD=from-secrets\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DB_PASSWORD") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-secrets", cfg.DB.Password)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "db: [not, a, map]"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "db:\n  host: localhost\n"))
	require.ErrorContains(t, err, "required")

	_, err = Load(writeConfig(t, "db:\n  host: h\n  user: u\n  name: n\nauth:\n  bcrypt_cost: 99\n"))
	require.ErrorContains(t, err, "bcrypt_cost")
}
