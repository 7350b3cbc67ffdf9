package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{old[0]}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestParseJSON_OverlaysValues(t *testing.T) {
	path := writeTempConfig(t, `{
		"endpoint_addr": ":9090",
		"database_dsn": "postgres://json",
		"secret_key": "json-secret",
		"access_token_validity_duration": "20m",
		"refresh_token_validity_duration": "720h",
		"reset_token_max_age": "30m"
	}`)
	withArgs(t, "-c", path)

	var c Config
	c.LoadDefaults()
	parseJSON(&c)

	assert.Equal(t, ":9090", c.EndpointAddr)
	assert.Equal(t, "postgres://json", c.DatabaseDSN)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 20*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 720*time.Hour, c.RefreshTokenValidityDuration)
	assert.Equal(t, 30*time.Minute, c.ResetTokenMaxAge)
}

func TestParseJSON_MissingFieldsKeepDefaults(t *testing.T) {
	path := writeTempConfig(t, `{"endpoint_addr": ":7070"}`)
	withArgs(t, "-config", path)

	var c Config
	c.LoadDefaults()
	parseJSON(&c)

	assert.Equal(t, ":7070", c.EndpointAddr)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
}

func TestParseJSON_NoFlagNoop(t *testing.T) {
	withArgs(t)

	var c Config
	c.LoadDefaults()
	parseJSON(&c)

	assert.Equal(t, ":8080", c.EndpointAddr)
}
