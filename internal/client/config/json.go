package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/dmitrijs2005/storefront/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// stay nil and leave the corresponding Config field untouched.
type JsonConfig struct {
	ServerBaseURL       *string         `json:"server_base_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	DBPath              *string         `json:"db_path"`
	KeyPath             *string         `json:"key_path"`
	ReceiptDir          *string         `json:"receipt_dir"`
	LogFormat           *string         `json:"log_format"`
	LogLevel            *string         `json:"log_level"`
	CompensateOnFailure *bool           `json:"compensate_on_failure"`
	StrictPrices        *bool           `json:"strict_prices"`
	S3Bucket            *string         `json:"s3_bucket"`
	S3Region            *string         `json:"s3_region"`
	S3Endpoint          *string         `json:"s3_endpoint"`
	S3AccessKey         *string         `json:"s3_access_key"`
	S3SecretKey         *string         `json:"s3_secret_key"`
	S3PresignTTL        *timex.Duration `json:"s3_presign_ttl"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// It panics on read or decode errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.KeyPath, jc.KeyPath)
	setString(&cfg.ReceiptDir, jc.ReceiptDir)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.S3PresignTTL != nil {
		cfg.S3PresignTTL = jc.S3PresignTTL.Duration
	}
	if jc.CompensateOnFailure != nil {
		cfg.CompensateOnFailure = *jc.CompensateOnFailure
	}
	if jc.StrictPrices != nil {
		cfg.StrictPrices = *jc.StrictPrices
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
