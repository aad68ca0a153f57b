// Package config holds the settings of the HTTP API.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultListen         = ":8080"
	DefaultLogLevel       = "info"
	DefaultMaxUploadBytes = 32 << 20 // 32MB

	MinMaxUploadBytes = 1 << 10

	EnvPrefix = "STEGANO"
)

var DefaultAllowOrigins = []string{"http://localhost:3000"}

type Config struct {
	Listen         string   `mapstructure:"listen"`
	AllowOrigins   []string `mapstructure:"allow-origins"`
	MaxUploadBytes int64    `mapstructure:"max-upload-bytes"`
	LogLevel       string   `mapstructure:"log-level"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen:         DefaultListen,
		AllowOrigins:   append([]string(nil), DefaultAllowOrigins...),
		MaxUploadBytes: DefaultMaxUploadBytes,
		LogLevel:       DefaultLogLevel,
	}
}

func (cfg *Config) Validate() error {
	if cfg.Listen == "" {
		return errors.New("invalid `Listen`; expected: a host:port address, given: empty")
	}

	if len(cfg.AllowOrigins) == 0 {
		return errors.New("invalid `AllowOrigins`; expected: at least one origin, given: none")
	}

	if cfg.MaxUploadBytes < MinMaxUploadBytes {
		return fmt.Errorf("invalid `MaxUploadBytes`; expected: >= %d, given: %d", MinMaxUploadBytes, cfg.MaxUploadBytes)
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid `LogLevel`; expected: debug, info, warn or error, given: %q", cfg.LogLevel)
	}

	return nil
}

// Load reads the configuration from path, if given, and from STEGANO_*
// environment variables, on top of the defaults. The result is not
// validated: callers apply flag overrides first and then call Validate.
func Load(path string) (*Config, error) {
	vip := viper.New()
	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	cfg := DefaultConfig()
	vip.SetDefault("listen", cfg.Listen)
	vip.SetDefault("allow-origins", cfg.AllowOrigins)
	vip.SetDefault("max-upload-bytes", cfg.MaxUploadBytes)
	vip.SetDefault("log-level", cfg.LogLevel)

	if path != "" {
		vip.SetConfigFile(path)
		if err := vip.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
