// Package config loads runtime configuration for the dashboard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file (-e/-env, else ./.env if present) and STOCKDASH_* process
//     environment variables, the latter winning.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags (see parseFlags).
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080/api",
//	  "request_timeout": "10s",
//	  "database_path": "stockdash.db",
//	  "expiry_check_interval": "1m",
//	  "refresh_interval": "30s",
//	  "page_size": 10,
//	  "log_level": "info",
//	  "log_file": "stockdash.log",
//	  "s3": {"bucket": "reports", "endpoint": "http://localhost:9000"}
//	}
package config
