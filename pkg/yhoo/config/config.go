// Package config loads CLI settings from defaults, an optional config file,
// a .env file and YHOO_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/komsit37/yhoo/pkg/yhoo/dispatch"
	"github.com/komsit37/yhoo/pkg/yhoo/request"
	"github.com/komsit37/yhoo/pkg/yhoo/transport"
)

// EnvPrefix prefixes every environment override, e.g. YHOO_BASE_URL.
const EnvPrefix = "YHOO"

// Settings are the resolved runtime settings.
type Settings struct {
	BaseURL            string        `mapstructure:"base_url" validate:"required,url"`
	MaxConcurrentCalls int           `mapstructure:"max_concurrent_calls" validate:"gte=1"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"gte=0"`
	UserAgent          string        `mapstructure:"user_agent" validate:"required"`
	LogLevel           string        `mapstructure:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	MaxColWidth        int           `mapstructure:"max_col_width" validate:"gte=0"`
}

// InvalidSettingsError wraps validation failures of the merged settings.
type InvalidSettingsError struct {
	Err error
}

func (e *InvalidSettingsError) Error() string { return "invalid settings: " + e.Err.Error() }

func (e *InvalidSettingsError) Unwrap() error { return e.Err }

var validate = validator.New()

// Defaults registers default values on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("base_url", request.DefaultBaseURL)
	v.SetDefault("max_concurrent_calls", dispatch.DefaultMaxConcurrentCalls)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("user_agent", transport.DefaultUserAgent)
	v.SetDefault("log_level", "warn")
	v.SetDefault("max_col_width", 40)
}

// DefaultPath is $HOME/.config/yhoo/config.yaml, or "" when HOME is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "yhoo", "config.yaml")
}

// Load resolves settings. An explicit path must exist; the default path and
// .env are optional.
func Load(v *viper.Viper, path string) (*Settings, error) {
	_ = godotenv.Load()

	Defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	switch {
	case path != "":
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	default:
		if def := DefaultPath(); def != "" {
			v.SetConfigFile(def)
			if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", def, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return nil, &InvalidSettingsError{Err: err}
	}
	return &s, nil
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}
