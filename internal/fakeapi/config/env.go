package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return def
}

// parseEnv overlays cfg with FAKEAPI_* variables. It panics on values that
// do not parse.
func parseEnv(cfg *Config, files ...string) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(fmt.Errorf("load %s: %w", f, err))
		}
	}

	cfg.Addr = getEnv("FAKEAPI_ADDR", cfg.Addr)
	cfg.SecretKey = getEnv("FAKEAPI_SECRET", cfg.SecretKey)
	cfg.LogFormat = getEnv("FAKEAPI_LOG_FORMAT", cfg.LogFormat)
	cfg.LogLevel = getEnv("FAKEAPI_LOG_LEVEL", cfg.LogLevel)

	if v := getEnv("FAKEAPI_TOKEN_TTL", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("FAKEAPI_TOKEN_TTL: %w", err))
		}
		cfg.TokenTTL = d
	}
	if v := getEnv("FAKEAPI_AUTH_RPS", ""); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(fmt.Errorf("FAKEAPI_AUTH_RPS: %w", err))
		}
		cfg.AuthRatePerSecond = rps
	}
	if v := getEnv("FAKEAPI_AUTH_BURST", ""); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("FAKEAPI_AUTH_BURST: %w", err))
		}
		cfg.AuthBurst = burst
	}
}
