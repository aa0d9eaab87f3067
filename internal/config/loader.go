// Package config loads the crpt CLI configuration.
// Layer 1: built-in defaults
// Layer 2: YAML config file (explicit path, or crpt.yaml in the working or home directory)
// Layer 3: CRPT_* environment variables (CRPT_RATE_LIMIT maps to rate.limit)
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/demonid/crpt-go/api"
)

const (
	EnvPrefix  = "CRPT"
	ConfigName = "crpt"
)

var units = map[string]time.Duration{
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
}

// SetDefaults registers every known key, so AutomaticEnv picks up overrides for all of them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("base_url", api.DefaultBaseUrl)
	v.SetDefault("timeout", "10s")
	v.SetDefault("token", "")

	v.SetDefault("rate.limit", 5)
	v.SetDefault("rate.interval", 1)
	v.SetDefault("rate.unit", "s")
	v.SetDefault("rate.backend", BackendSlidingWindow)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key", "crpt:documents:create")

	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.buffer_size", 100)

	v.SetDefault("logging.level", "info")
}

// NewViper returns a viper instance with defaults and environment
// bindings applied. cfgFile may be empty.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (a missing default file is not an error),
// decodes all settings and validates the result.
func Load(cfgFile string) (*Config, error) {
	v := NewViper(cfgFile)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return Decode(v)
}

func Decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the client cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseUrl) == "" {
		return fmt.Errorf("base_url cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Rate.Limit <= 0 {
		return fmt.Errorf("rate.limit must be positive, got %d", c.Rate.Limit)
	}
	if c.Rate.Interval <= 0 {
		return fmt.Errorf("rate.interval must be positive, got %d", c.Rate.Interval)
	}
	if _, err := ParseUnit(c.Rate.Unit); err != nil {
		return err
	}
	switch c.Rate.Backend {
	case BackendSlidingWindow, BackendTokenBucket:
	case BackendRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("redis.addr is required for the %s backend", BackendRedis)
		}
	default:
		return fmt.Errorf("unknown rate.backend %q", c.Rate.Backend)
	}
	return nil
}

// ParseUnit maps a unit name (ms, s, m, h) to its duration.
func ParseUnit(unit string) (time.Duration, error) {
	d, ok := units[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, fmt.Errorf("unknown rate.unit %q, expected one of ms, s, m, h", unit)
	}
	return d, nil
}
