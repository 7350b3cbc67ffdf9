package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerBaseURL)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
}

func TestParseFlags_Overrides(t *testing.T) {
	old := os.Args
	os.Args = []string{old[0], "-a", "http://auth.example.com", "-t", "10"}
	t.Cleanup(func() { os.Args = old })

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, "http://auth.example.com", c.ServerBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	old := os.Args
	os.Args = []string{old[0], "-test.v", "-a", "http://other"}
	t.Cleanup(func() { os.Args = old })

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, "http://other", c.ServerBaseURL)
}
