package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is a DTO used exclusively for decoding config files. Fields
// left out of the file keep the value they had before.
type fileConfig struct {
	APIBaseURL     string          `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       string          `json:"log_level" yaml:"log_level"`
	LogFormat      string          `json:"log_format" yaml:"log_format"`
	BridgeAddr     string          `json:"bridge_addr" yaml:"bridge_addr"`
	BridgeSecret   string          `json:"bridge_secret" yaml:"bridge_secret"`
	BridgeTokenTTL *timex.Duration `json:"bridge_token_ttl" yaml:"bridge_token_ttl"`
}

// parseFile overlays cfg with the values found in the file at path.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.BridgeAddr, fc.BridgeAddr)
	setString(&cfg.BridgeSecret, fc.BridgeSecret)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.BridgeTokenTTL != nil {
		cfg.BridgeTokenTTL = fc.BridgeTokenTTL.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
