package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/backupsync/internal/flagx"
	"github.com/dmitrijs2005/backupsync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "90s" or as integer nanoseconds.
type JsonConfig struct {
	S3Endpoint  string         `json:"s3_endpoint"`
	S3Region    string         `json:"s3_region"`
	S3Bucket    string         `json:"s3_bucket"`
	S3AccessKey string         `json:"s3_access_key"`
	S3SecretKey string         `json:"s3_secret_key"`
	KeyPrefix   string         `json:"key_prefix"`
	CallTimeout timex.Duration `json:"call_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file located via
// the -c or -config flags (flagx.JsonConfigFlags). Absent flags mean no
// JSON is loaded. Read or unmarshal errors panic; callers may recover.
//
// Only fields actually present in the file override the config, so a file
// carrying just the secret key leaves everything else at its defaults.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.S3Endpoint != "" {
		cfg.S3Endpoint = jc.S3Endpoint
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.KeyPrefix != "" {
		cfg.KeyPrefix = jc.KeyPrefix
	}
	if jc.CallTimeout.Duration != 0 {
		cfg.CallTimeout = time.Duration(jc.CallTimeout.Duration)
	}
}
