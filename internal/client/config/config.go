package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/stockdash/internal/logging"
)

// S3Config locates the bucket used by the report export. An empty Bucket
// disables the export.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Config holds runtime settings for the dashboard client.
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	DatabasePath        string
	ExpiryCheckInterval time.Duration
	RefreshInterval     time.Duration
	PageSize            int
	LogLevel            string
	LogFile             string
	S3                  S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://stockscope-production.up.railway.app/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "stockdash.db"
	c.ExpiryCheckInterval = time.Minute
	c.RefreshInterval = 30 * time.Second
	c.PageSize = 10
	c.LogLevel = "warn"
	c.S3.Region = "us-east-1"
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIBaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("api url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https", u.Host == "":
		errs = append(errs, fmt.Errorf("api url %q: want http(s)://host[/path]", c.APIBaseURL))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.ExpiryCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("expiry check interval must be positive, got %s", c.ExpiryCheckInterval))
	}
	if c.RefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("refresh interval must be positive, got %s", c.RefreshInterval))
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		errs = append(errs, fmt.Errorf("page size must be within 1..100, got %d", c.PageSize))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database path is empty"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, then the .env file and process
// environment, then the JSON file, then command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args, lookupEnv); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
