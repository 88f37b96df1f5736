// Package config handles configuration for the fake backend: defaults,
// FAKEAPI_* environment variables (a .env file is loaded first) and
// command-line flags, in that order of precedence.
package config

import (
	"time"
)

// Config holds runtime settings for the fake backend.
//
// Fields:
//   - Addr: HTTP bind address.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use the default outside development.
//   - TokenTTL: session token lifetime.
//   - AuthRatePerSecond / AuthBurst: per-address limit on the /api/auth routes.
//   - LogFormat / LogLevel: logger selection, as for the client.
type Config struct {
	Addr              string
	SecretKey         string
	TokenTTL          time.Duration
	AuthRatePerSecond float64
	AuthBurst         int
	LogFormat         string
	LogLevel          string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = "secretKey"
	c.TokenTTL = time.Hour
	c.AuthRatePerSecond = 5
	c.AuthBurst = 20
	c.LogFormat = "console"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then the environment and
// finally command-line flags.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env")
	parseFlags(cfg, args)
	return cfg
}
