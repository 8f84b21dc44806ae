// Package config holds runtime settings for the backupsync CLI and wires the
// defaults → JSON file → command-line flags layering, where later sources
// take precedence over earlier ones.
package config

import "time"

// Config holds runtime settings for talking to the remote record store.
//
// S3SecretKey may legitimately stay empty after loading; the CLI then
// prompts for it without echo.
type Config struct {
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	// KeyPrefix scopes all backup records under one key namespace in the
	// bucket.
	KeyPrefix string
	// CallTimeout bounds each CLI operation end to end, retries included.
	CallTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults for a local MinIO setup.
func (c *Config) LoadDefaults() {
	c.S3Endpoint = "http://127.0.0.1:9000"
	c.S3Region = "us-east-1"
	c.S3Bucket = "backups"
	c.KeyPrefix = "records"
	c.CallTimeout = 120 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
