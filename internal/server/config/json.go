package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dcastano/authd/internal/flagx"
	"github.com/dcastano/authd/internal/timex"
)

// JSONConfig is an intermediate DTO used only for reading JSON configuration
// files. Duration fields use timex.Duration, which accepts both string values
// such as "15m" and integer nanoseconds. After unmarshalling, the values are
// copied into the runtime Config.
type JSONConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	ResetSecretKey               string         `json:"reset_secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	ResetTokenMaxAge             timex.Duration `json:"reset_token_max_age"`
}

// parseJSON loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When no file is given, the
// Config is left untouched. Unreadable or invalid files panic: the server
// must not start on a half-read configuration.
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

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.ResetSecretKey != "" {
		config.ResetSecretKey = c.ResetSecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
	}
	if c.ResetTokenMaxAge.Duration != 0 {
		config.ResetTokenMaxAge = time.Duration(c.ResetTokenMaxAge.Duration)
	}
}
