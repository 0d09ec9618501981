// Package config loads runtime settings from an optional YAML file and
// ACQUIRER_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string         `mapstructure:"environment"`
	HTTP        HTTPConfig     `mapstructure:"http"`
	Issuer      IssuerConfig   `mapstructure:"issuer"`
	Log         LogConfig      `mapstructure:"log"`
	Payments    PaymentsConfig `mapstructure:"payments"`
	Merchants   MerchantConfig `mapstructure:"merchants"`
}

type HTTPConfig struct {
	Port        string        `mapstructure:"port"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

type IssuerConfig struct {
	Mode    string        `mapstructure:"mode"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type PaymentsConfig struct {
	DefaultMaxAmount int64 `mapstructure:"default_max_amount"`
}

type MerchantConfig struct {
	File string `mapstructure:"file"`
}

const (
	IssuerModeHTTP      = "http"
	IssuerModeSimulated = "simulated"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("issuer.mode", IssuerModeSimulated)
	v.SetDefault("issuer.base_url", "http://localhost:8080")
	v.SetDefault("issuer.timeout", 5*time.Second)
	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "")
	v.SetDefault("payments.default_max_amount", 1_000_000)
	v.SetDefault("merchants.file", "")
}

// Load reads defaults, then path (if not empty), then the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ACQUIRER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Issuer.Mode {
	case IssuerModeHTTP, IssuerModeSimulated:
	default:
		return fmt.Errorf("issuer.mode must be %q or %q, got %q", IssuerModeHTTP, IssuerModeSimulated, c.Issuer.Mode)
	}
	if c.Issuer.Timeout <= 0 {
		return fmt.Errorf("issuer.timeout must be positive")
	}
	if c.Payments.DefaultMaxAmount <= 0 {
		return fmt.Errorf("payments.default_max_amount must be positive")
	}
	return nil
}
