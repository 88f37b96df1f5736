// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed STOREFRONT_, after loading an optional
//     .env file from the working directory.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the storefront API
//	-t int      per-request timeout (seconds)
//	-d string   path of the local SQLite database
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "15s" or integer
// nanoseconds. Every key is optional:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "request_timeout": "15s",
//	  "db_path": "/home/me/.config/storefront/client.db",
//	  "key_path": "/home/me/.config/storefront/device.key",
//	  "receipt_dir": "/home/me/.config/storefront/receipts",
//	  "log_format": "console",
//	  "log_level": "info",
//	  "compensate_on_failure": false,
//	  "strict_prices": false,
//	  "s3_bucket": "receipts",
//	  "s3_region": "us-east-1",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin",
//	  "s3_presign_ttl": "15m"
//	}
//
// Invalid values panic, as the configuration is loaded once at startup.
package config
