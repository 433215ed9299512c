// Package config loads the validator's runtime configuration.
//
// Values come from CUSTVAL_-prefixed environment variables (a `.env` file in
// the working directory is loaded first) and are laid over DefaultConfig, so
// every key is optional:
//
//	CUSTVAL_BASE_URL      listing endpoint to walk
//	CUSTVAL_FILE          local page document; disables fetching when set
//	CUSTVAL_USER_AGENT    User-Agent header sent with page requests
//	CUSTVAL_TIMEOUT       per-request timeout (Go duration, e.g. "30s")
//	CUSTVAL_MAX_PAGES     stop after this many pages (0 = unlimited)
//	CUSTVAL_REDIS_ADDR    enables the HTTP response cache (host:port)
//	CUSTVAL_METRICS_ADDR  serves /health and /metrics on this address
//	CUSTVAL_LOG_LEVEL     debug, info, warn or error
//	CUSTVAL_LOG_PRETTY    human-readable console logs
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Loads a `.env` file into the process environment before Load reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable the validator reads.
const EnvPrefix = "CUSTVAL_"

// DefaultBaseURL is the challenge API's customer listing.
const DefaultBaseURL = "https://backend-challenge-winter-2017.herokuapp.com/customers.json"

// Config is the root configuration object.
type Config struct {
	BaseURL     string        `koanf:"base_url" validate:"required_without=File,omitempty,url"`
	File        string        `koanf:"file"`
	UserAgent   string        `koanf:"user_agent" validate:"required"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxPages    int           `koanf:"max_pages" validate:"gte=0"`
	RedisAddr   string        `koanf:"redis_addr" validate:"omitempty,hostname_port"`
	MetricsAddr string        `koanf:"metrics_addr"`
	LogLevel    string        `koanf:"log_level" validate:"oneof=debug info warn warning error"`
	LogPretty   bool          `koanf:"log_pretty"`
}

// DefaultConfig returns the zero-configuration behavior: walk the challenge
// API with no cache and no ops server.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: "customer-validator/1.0",
		Timeout:   30 * time.Second,
		LogLevel:  "info",
	}
}

// Load reads the environment over DefaultConfig and validates the result.
func Load() (Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the config's field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Local reports whether a local file replaces the HTTP source.
func (c Config) Local() bool {
	return c.File != ""
}
