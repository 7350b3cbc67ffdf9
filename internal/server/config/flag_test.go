package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overrides(t *testing.T) {
	old := os.Args
	os.Args = []string{old[0], "-a", ":9999", "-d", "postgres://flag", "-s", "flag-secret", "-t", "5", "-r", "60", "-m", "15"}
	t.Cleanup(func() { os.Args = old })

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":9999", c.EndpointAddr)
	assert.Equal(t, "postgres://flag", c.DatabaseDSN)
	assert.Equal(t, "flag-secret", c.SecretKey)
	assert.Equal(t, 5*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 60*time.Minute, c.RefreshTokenValidityDuration)
	assert.Equal(t, 15*time.Minute, c.ResetTokenMaxAge)
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	old := os.Args
	os.Args = []string{old[0], "-test.v", "-a", ":6060"}
	t.Cleanup(func() { os.Args = old })

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, ":6060", c.EndpointAddr)
}
