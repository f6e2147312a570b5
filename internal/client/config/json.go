package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/stockdash/internal/flagx"
	"github.com/dmitrijs2005/stockdash/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration, so they may be strings like "30s" or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	DatabasePath        string         `json:"database_path"`
	ExpiryCheckInterval timex.Duration `json:"expiry_check_interval"`
	RefreshInterval     timex.Duration `json:"refresh_interval"`
	PageSize            int            `json:"page_size"`
	LogLevel            string         `json:"log_level"`
	LogFile             string         `json:"log_file"`
	S3                  struct {
		Bucket    string `json:"bucket"`
		Region    string `json:"region"`
		Endpoint  string `json:"endpoint"`
		AccessKey string `json:"access_key"`
		SecretKey string `json:"secret_key"`
	} `json:"s3"`
}

// parseJSON overlays Config with the fields present in the JSON file named by
// -c/-config. Absent or zero fields keep their earlier value.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.S3.Bucket, jc.S3.Bucket)
	setString(&cfg.S3.Region, jc.S3.Region)
	setString(&cfg.S3.Endpoint, jc.S3.Endpoint)
	setString(&cfg.S3.AccessKey, jc.S3.AccessKey)
	setString(&cfg.S3.SecretKey, jc.S3.SecretKey)

	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ExpiryCheckInterval.Duration != 0 {
		cfg.ExpiryCheckInterval = jc.ExpiryCheckInterval.Duration
	}
	if jc.RefreshInterval.Duration != 0 {
		cfg.RefreshInterval = jc.RefreshInterval.Duration
	}
	if jc.PageSize != 0 {
		cfg.PageSize = jc.PageSize
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
