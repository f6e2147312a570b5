package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/stockdash/internal/flagx"
)

var flagNames = []string{
	"a", "t", "d", "x", "r", "p", "l",
	"log-file", "s3-bucket", "s3-region", "s3-endpoint", "s3-access-key", "s3-secret-key",
}

// parseFlags populates Config fields from command-line flags.
//
//	-a string            backend API base URL
//	-t duration          per-request timeout
//	-d string            local database path
//	-x duration          token expiry check interval
//	-r duration          admin dashboard refresh interval
//	-p int               users per page
//	-l string            log level (debug, info, warn, error)
//	-log-file string     write JSON logs to this file
//	-s3-bucket string    report bucket; empty disables export
//	-s3-region, -s3-endpoint, -s3-access-key, -s3-secret-key
//
// Only the flags listed here are parsed; -c/-config and -e/-env belong to the
// earlier stages and are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	allowed := make([]string, 0, 2*len(flagNames))
	for _, n := range flagNames {
		allowed = append(allowed, "-"+n, "--"+n)
	}
	filtered := flagx.FilterArgs(args, allowed)

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.DurationVar(&cfg.ExpiryCheckInterval, "x", cfg.ExpiryCheckInterval, "token expiry check interval")
	fs.DurationVar(&cfg.RefreshInterval, "r", cfg.RefreshInterval, "admin dashboard refresh interval")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "users per page")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "JSON log file")
	fs.StringVar(&cfg.S3.Bucket, "s3-bucket", cfg.S3.Bucket, "report bucket")
	fs.StringVar(&cfg.S3.Region, "s3-region", cfg.S3.Region, "report bucket region")
	fs.StringVar(&cfg.S3.Endpoint, "s3-endpoint", cfg.S3.Endpoint, "S3-compatible endpoint URL")
	fs.StringVar(&cfg.S3.AccessKey, "s3-access-key", cfg.S3.AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3.SecretKey, "s3-secret-key", cfg.S3.SecretKey, "S3 secret key")

	return fs.Parse(filtered)
}
