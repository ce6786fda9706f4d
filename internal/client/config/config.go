package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

// DefaultAPIBaseURL is the public users API the directory reads from.
const DefaultAPIBaseURL = "https://jsonplaceholder.typicode.com"

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the userdir CLI.
type Config struct {
	// APIBaseURL is the root of the upstream users API, without /users.
	APIBaseURL     string
	RequestTimeout time.Duration

	LogLevel  string
	LogFormat string

	// BridgeAddr is host:port of the gRPC bridge, both for serve and remote.
	BridgeAddr string
	// BridgeSecret signs and checks bridge tokens. Empty disables auth.
	BridgeSecret   string
	BridgeTokenTTL time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "auto"
	c.BridgeAddr = "127.0.0.1:50051"
	c.BridgeSecret = ""
	c.BridgeTokenTTL = time.Hour
}

// Validate checks values that would only fail later and less clearly.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api url %q must be an absolute http(s) URL", ErrInvalidConfig, c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive, got %s", ErrInvalidConfig, c.RequestTimeout)
	}
	if c.BridgeTokenTTL <= 0 {
		return fmt.Errorf("%w: token ttl must be positive, got %s", ErrInvalidConfig, c.BridgeTokenTTL)
	}
	return nil
}

// Load builds a Config from defaults, the file named by the config flag in
// fs, and the flags in fs that were explicitly set. Flags not registered in
// fs are skipped, so a command can pass just its own flag set.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := configPath(fs); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
