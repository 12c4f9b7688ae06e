// Package config wraps viper behind a small nil-safe accessor type and
// owns the application defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is a nil-safe read view over a viper instance. A Config built
// from a nil viper returns zero values rather than panicking, which keeps
// optional config sections cheap to consume.
type Config struct {
	v *viper.Viper
}

// New wraps a viper instance. A nil viper yields a Config that returns
// zero values for every key.
func New(v *viper.Viper) *Config {
	return &Config{v: v}
}

// GetString returns the string value for key.
func (c *Config) GetString(key string) string {
	if c == nil || c.v == nil {
		return ""
	}
	return c.v.GetString(key)
}

// GetInt returns the int value for key.
func (c *Config) GetInt(key string) int {
	if c == nil || c.v == nil {
		return 0
	}
	return c.v.GetInt(key)
}

// GetBool returns the bool value for key.
func (c *Config) GetBool(key string) bool {
	if c == nil || c.v == nil {
		return false
	}
	return c.v.GetBool(key)
}

// GetFloat64 returns the float64 value for key.
func (c *Config) GetFloat64(key string) float64 {
	if c == nil || c.v == nil {
		return 0
	}
	return c.v.GetFloat64(key)
}

// GetDuration returns the duration value for key.
func (c *Config) GetDuration(key string) time.Duration {
	if c == nil || c.v == nil {
		return 0
	}
	return c.v.GetDuration(key)
}

// GetStringSlice returns the string slice value for key.
func (c *Config) GetStringSlice(key string) []string {
	if c == nil || c.v == nil {
		return nil
	}
	return c.v.GetStringSlice(key)
}

// IsSet reports whether key has a value.
func (c *Config) IsSet(key string) bool {
	if c == nil || c.v == nil {
		return false
	}
	return c.v.IsSet(key)
}

// Sub returns the subtree rooted at key. Missing keys yield an empty
// Config, never nil.
func (c *Config) Sub(key string) *Config {
	if c == nil || c.v == nil {
		return New(nil)
	}
	return New(c.v.Sub(key))
}

// Unmarshal decodes the configuration into target via mapstructure tags.
func (c *Config) Unmarshal(target any) error {
	if c == nil || c.v == nil {
		return nil
	}
	return c.v.Unmarshal(target)
}

// Load reads the configuration file at path (optional) layered over the
// defaults and DEALDECK_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8420)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.rate_limit", 0.0)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("catalog.data_dir", "data")
	v.SetDefault("catalog.regions", []string{"us", "ca"})
	v.SetDefault("catalog.affiliate_tag", "ohcanadadeals06-20")
	v.SetDefault("catalog.placeholder_image", "/placeholder.svg")
	v.SetDefault("store.path", "dealdeck.db")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("DEALDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return New(v), nil
}
