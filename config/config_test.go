package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lsb-steganography/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, config.DefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Listen = ""
	require.Error(t, cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.MaxUploadBytes = 10
	require.Error(t, cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.AllowOrigins = nil
	require.Error(t, cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.LogLevel = "loud"
	require.Error(t, cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.LogLevel = "debug"
	require.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "stegano.yaml")
	req.NoError(os.WriteFile(path, []byte(`
listen: 127.0.0.1:9000
allow-origins:
  - https://example.org
max-upload-bytes: 1048576
log-level: debug
`), 0o600))

	cfg, err := config.Load(path)
	req.NoError(err)
	req.Equal("127.0.0.1:9000", cfg.Listen)
	req.Equal([]string{"https://example.org"}, cfg.AllowOrigins)
	req.Equal(int64(1<<20), cfg.MaxUploadBytes)
	req.Equal("debug", cfg.LogLevel)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("STEGANO_LISTEN", ":9999")
	t.Setenv("STEGANO_LOG_LEVEL", "warn")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Listen)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max-upload-bytes: lots\n"), 0o600))
	_, err = config.Load(path)
	require.Error(t, err)
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	t.Setenv("STEGANO_LOG_LEVEL", "loud")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "loud", cfg.LogLevel)
	require.Error(t, cfg.Validate())

	// A flag override repairs the value before validation.
	cfg.LogLevel = "debug"
	require.NoError(t, cfg.Validate())
}
