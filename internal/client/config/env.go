package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/dmitrijs2005/stockdash/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Environment variables read by parseEnv.
const (
	EnvAPIURL         = "STOCKDASH_API_URL"
	EnvRequestTimeout = "STOCKDASH_REQUEST_TIMEOUT"
	EnvDatabase       = "STOCKDASH_DB"
	EnvExpiryCheck    = "STOCKDASH_EXPIRY_CHECK_INTERVAL"
	EnvRefresh        = "STOCKDASH_REFRESH_INTERVAL"
	EnvPageSize       = "STOCKDASH_PAGE_SIZE"
	EnvLogLevel       = "STOCKDASH_LOG_LEVEL"
	EnvLogFile        = "STOCKDASH_LOG_FILE"
	EnvS3Bucket       = "STOCKDASH_S3_BUCKET"
	EnvS3Region       = "STOCKDASH_S3_REGION"
	EnvS3Endpoint     = "STOCKDASH_S3_ENDPOINT"
	EnvS3AccessKey    = "STOCKDASH_S3_ACCESS_KEY"
	EnvS3SecretKey    = "STOCKDASH_S3_SECRET_KEY"
)

// parseEnv overlays Config with STOCKDASH_* values from a .env file and the
// process environment; the environment wins over the file.
//
// The file is the one named by -e/-env, else ./.env when it exists. A file
// named explicitly must exist.
func parseEnv(cfg *Config, args []string, lookupEnv func(string) (string, bool)) error {
	fileVars := map[string]string{}

	path := flagx.EnvFileFlag(args)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	vars, err := godotenv.Read(path)
	switch {
	case err == nil:
		fileVars = vars
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("read env file %s: %w", path, err)
	}

	get := func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	str := func(key string, dst *string) {
		if v, ok := get(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := get(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str(EnvAPIURL, &cfg.APIBaseURL)
	str(EnvDatabase, &cfg.DatabasePath)
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvLogFile, &cfg.LogFile)
	str(EnvS3Bucket, &cfg.S3.Bucket)
	str(EnvS3Region, &cfg.S3.Region)
	str(EnvS3Endpoint, &cfg.S3.Endpoint)
	str(EnvS3AccessKey, &cfg.S3.AccessKey)
	str(EnvS3SecretKey, &cfg.S3.SecretKey)

	if err := dur(EnvRequestTimeout, &cfg.RequestTimeout); err != nil {
		return err
	}
	if err := dur(EnvExpiryCheck, &cfg.ExpiryCheckInterval); err != nil {
		return err
	}
	if err := dur(EnvRefresh, &cfg.RefreshInterval); err != nil {
		return err
	}

	if v, ok := get(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		cfg.PageSize = n
	}
	return nil
}
