package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counsel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	path := writeConfig(t, `
baseURL: https://admin.example.com/api
upload:
  overlayText: importing…
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://admin.example.com/api", cfg.BaseURL)
	assert.Equal(t, DefaultTokenEnv, cfg.TokenEnv)
	assert.Equal(t, DefaultRequestTimeout, cfg.Timeout)
	assert.Equal(t, "importing…", cfg.Upload.OverlayText)
	assert.Equal(t, DefaultSuccessMessage, cfg.Upload.SuccessMessage)
	assert.Equal(t, 3*time.Second, cfg.Upload.ToastDuration)
	assert.Equal(t, RateLimit{Limit: DefaultRateLimitPerSec, Burst: DefaultRateLimitBurst}, cfg.RateLimit)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadConfigDurations(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	path := writeConfig(t, `
baseURL: https://admin.example.com/api
timeout: 30s
upload:
  toastDuration: 1500ms
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Upload.ToastDuration)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv(BaseURLEnv, "http://127.0.0.1:8089")
	t.Setenv(SkipVerifyEnv, "true")
	path := writeConfig(t, `baseURL: https://admin.example.com/api`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8089", cfg.BaseURL)
	assert.True(t, cfg.SkipVerify)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv(BaseURLEnv, "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, ErrConfigFileMissing)

	_, err = LoadConfig(writeConfig(t, "baseURL: [unterminated"))
	assert.ErrorIs(t, err, ErrConfigFileUnmarshallable)

	_, err = LoadConfig(writeConfig(t, "timeout: 5s"))
	assert.ErrorIs(t, err, ErrBaseURLMissing)

	_, err = LoadConfig(writeConfig(t, "baseURL: admin.example.com"))
	assert.ErrorIs(t, err, ErrBaseURLInvalid)

	_, err = LoadConfig(writeConfig(t, "baseURL: https://a.example\nretries: -1"))
	assert.ErrorIs(t, err, ErrRetriesInvalid)

	_, err = LoadConfig(writeConfig(t, "baseURL: https://a.example\nlogging:\n  format: xml"))
	assert.ErrorIs(t, err, ErrLoggingFormatInvalid)
}

func TestGenerateConfig(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	path := filepath.Join(t.TempDir(), "counsel.yaml")

	generated, err := GenerateConfig(path)
	require.NoError(t, err)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, generated, loaded)

	_, err = GenerateConfig(path)
	assert.ErrorIs(t, err, ErrConfigFileExists)
}
