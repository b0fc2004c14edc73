package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "auth_token", cfg.JWT.CookieName)
	assert.Equal(t, int64(2*1024*1024), cfg.Upload.AvatarMaxSize)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.ThumbnailMaxSize)
	assert.Equal(t, 3, cfg.Blob.RetryAttempts)
	assert.Equal(t, time.Second, cfg.RetryUnit())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
	assert.False(t, cfg.Features.PremiumModal)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9000
  env: production
database:
  driver: mysql
  url: "user:pass@tcp(localhost:3306)/cv"
features:
  premium_modal: true
blob:
  retry_unit_ms: 10
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.True(t, cfg.Features.PremiumModal)
	assert.Equal(t, 10*time.Millisecond, cfg.RetryUnit())
	// значения, не указанные в файле, остаются по умолчанию
	assert.Equal(t, "local", cfg.Storage.Type)
}

func TestLoad_BrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
