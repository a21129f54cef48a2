package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CALC_AUTH_JWTSECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/calc.db", cfg.Database.Path)
	assert.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Equal(t, 20.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CALC_AUTH_JWTSECRET", "secret")
	t.Setenv("CALC_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("CALC_DATABASE_DRIVER", "memory")
	t.Setenv("CALC_AUTH_TOKENTTLMINUTES", "5")
	t.Setenv("CALC_RATELIMIT_REQUESTSPERSECOND", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 0.0, cfg.RateLimit.RequestsPerSecond)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("CALC_AUTH_JWTSECRET", "")
	os.Unsetenv("CALC_AUTH_JWTSECRET")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("# local\nCALC_AUTH_JWTSECRET=\"from-dotenv\"\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CALC_AUTH_JWTSECRET") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Auth.JWTSecret)
}

func TestLoadRequiresSecret(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CALC_AUTH_JWTSECRET", " ")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	var cfg Config
	cfg.Auth.JWTSecret = "secret"
	cfg.Auth.TokenTTLMinutes = 30
	cfg.Auth.BcryptCost = bcrypt.DefaultCost
	cfg.Database.Driver = "postgres"

	assert.Error(t, cfg.Validate())
}
