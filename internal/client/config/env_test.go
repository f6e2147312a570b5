package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dash.env")
	require.NoError(t, os.WriteFile(path, []byte(`
# comment
STOCKDASH_API_URL=http://file/api
STOCKDASH_REQUEST_TIMEOUT=4s
STOCKDASH_S3_BUCKET="reports"
STOCKDASH_S3_SECRET_KEY=from-file
`), 0o600))

	cfg := &Config{}
	cfg.LoadDefaults()
	err := parseEnv(cfg, []string{"--env=" + path}, envMap(map[string]string{
		EnvS3SecretKey: "from-env",
		EnvExpiryCheck: "90s",
		EnvLogFile:     "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://file/api", cfg.APIBaseURL)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "reports", cfg.S3.Bucket)
	assert.Equal(t, "from-env", cfg.S3.SecretKey)
	assert.Equal(t, 90*time.Second, cfg.ExpiryCheckInterval)
	assert.Empty(t, cfg.LogFile)
}

func TestParseEnv_DefaultFileOptional(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg := &Config{}
	require.NoError(t, parseEnv(cfg, nil, noEnv))
	assert.Equal(t, Config{}, *cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STOCKDASH_DB=local.db\n"), 0o600))
	require.NoError(t, parseEnv(cfg, nil, noEnv))
	assert.Equal(t, "local.db", cfg.DatabasePath)
}
