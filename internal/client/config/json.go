package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dcastano/authd/internal/flagx"
	"github.com/dcastano/authd/internal/timex"
)

// JSONConfig is an intermediate DTO used only for reading JSON configuration
// files.
type JSONConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJSON loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When no file is given, the
// Config is left untouched.
func parseJSON(config *Config) {

	jsonConfigFile := flagx.JSONConfigPath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JSONConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerBaseURL != "" {
		config.ServerBaseURL = c.ServerBaseURL
	}
	if c.RequestTimeout.Duration != 0 {
		config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
	}
}
