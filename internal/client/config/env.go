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

const envPrefix = "STOREFRONT_"

// parseEnv overlays cfg with STOREFRONT_* variables. Files are loaded first
// with godotenv; missing files are skipped and real environment variables
// win over file entries.
func parseEnv(cfg *Config, files ...string) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(fmt.Errorf("load %s: %w", f, err))
		}
	}

	envString("SERVER_BASE_URL", &cfg.ServerBaseURL)
	envDuration("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	envString("DB_PATH", &cfg.DBPath)
	envString("KEY_PATH", &cfg.KeyPath)
	envString("RECEIPT_DIR", &cfg.ReceiptDir)
	envString("LOG_FORMAT", &cfg.LogFormat)
	envString("LOG_LEVEL", &cfg.LogLevel)
	envBool("COMPENSATE_ON_FAILURE", &cfg.CompensateOnFailure)
	envBool("STRICT_PRICES", &cfg.StrictPrices)
	envString("S3_BUCKET", &cfg.S3Bucket)
	envString("S3_REGION", &cfg.S3Region)
	envString("S3_ENDPOINT", &cfg.S3Endpoint)
	envString("S3_ACCESS_KEY", &cfg.S3AccessKey)
	envString("S3_SECRET_KEY", &cfg.S3SecretKey)
	envDuration("S3_PRESIGN_TTL", &cfg.S3PresignTTL)
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
		*dst = v
	}
}

func envBool(key string, dst *bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(fmt.Errorf("%s%s: %w", envPrefix, key, err))
	}
	*dst = b
}

func envDuration(key string, dst *time.Duration) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s%s: %w", envPrefix, key, err))
	}
	*dst = d
}
