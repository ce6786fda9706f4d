// Package config loads runtime configuration for the userdir CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or --config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values. Only flags the
//     user actually set take part, so a flag default never masks the file.
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://jsonplaceholder.typicode.com",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "log_format": "auto",
//	  "bridge_addr": "127.0.0.1:50051",
//	  "bridge_secret": "",
//	  "bridge_token_ttl": "1h"
//	}
package config
