package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names shared by the command tree.
const (
	FlagConfig    = "config"
	FlagAPIURL    = "api-url"
	FlagTimeout   = "timeout"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagAddr      = "addr"
	FlagSecret    = "secret"
	FlagTTL       = "ttl"
)

// RegisterGlobalFlags adds the flags every command understands. Defaults
// shown in help come from Config.LoadDefaults.
func RegisterGlobalFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.StringP(FlagAPIURL, "a", d.APIBaseURL, "base URL of the users API")
	fs.DurationP(FlagTimeout, "t", d.RequestTimeout, "timeout of a single API request")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(FlagLogFormat, d.LogFormat, "log format: auto, text, json")
}

// RegisterBridgeFlags adds the flags of commands that serve or call the
// gRPC bridge.
func RegisterBridgeFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.String(FlagAddr, d.BridgeAddr, "host:port of the gRPC bridge")
	fs.String(FlagSecret, d.BridgeSecret, "shared secret for bridge tokens (empty disables auth)")
}

// RegisterTTLFlag adds the lifetime flag of minted bridge tokens.
func RegisterTTLFlag(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.Duration(FlagTTL, d.BridgeTokenTTL, "lifetime of the issued token")
}

func configPath(fs *pflag.FlagSet) string {
	if fs == nil || fs.Lookup(FlagConfig) == nil {
		return ""
	}
	path, _ := fs.GetString(FlagConfig)
	return path
}

// applyFlags copies every flag the user set into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagAPIURL:
			cfg.APIBaseURL, err = fs.GetString(f.Name)
		case FlagTimeout:
			cfg.RequestTimeout, err = fs.GetDuration(f.Name)
		case FlagLogLevel:
			cfg.LogLevel, err = fs.GetString(f.Name)
		case FlagLogFormat:
			cfg.LogFormat, err = fs.GetString(f.Name)
		case FlagAddr:
			cfg.BridgeAddr, err = fs.GetString(f.Name)
		case FlagSecret:
			cfg.BridgeSecret, err = fs.GetString(f.Name)
		case FlagTTL:
			cfg.BridgeTokenTTL, err = fs.GetDuration(f.Name)
		}
	})
	if err != nil {
		return fmt.Errorf("read flags: %w", err)
	}
	return nil
}
