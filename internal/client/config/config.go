package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the storefront CLI.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration

	DBPath     string
	KeyPath    string
	ReceiptDir string

	LogFormat string
	LogLevel  string

	CompensateOnFailure bool
	StrictPrices        bool

	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
	S3PresignTTL time.Duration
}

func dataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "storefront")
	}
	return ".storefront"
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	dir := dataDir()

	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.DBPath = filepath.Join(dir, "client.db")
	c.KeyPath = filepath.Join(dir, "device.key")
	c.ReceiptDir = filepath.Join(dir, "receipts")
	c.LogFormat = "text"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
	c.S3PresignTTL = 15 * time.Minute
}

// LoadConfig builds a Config from defaults, the environment, the JSON file
// and flags, in that order of increasing precedence.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env")
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
