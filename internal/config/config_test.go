package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:9000", c.S3Endpoint)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "backups", c.S3Bucket)
	assert.Equal(t, "records", c.KeyPrefix)
	assert.Equal(t, 120*time.Second, c.CallTimeout)
	assert.Empty(t, c.S3SecretKey)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:9000", cfg.S3Endpoint)
	assert.Equal(t, 120*time.Second, cfg.CallTimeout)
}
