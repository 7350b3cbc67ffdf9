package config

import "os"

// parseEnv overlays values from the environment. The variable names match
// what the deployment already exports: AUTH_SERVICE_SECRET_KEY takes
// precedence over SECRET_KEY for token signing, and AUTH_DB_URL over
// DATABASE_URL for the DSN.
func parseEnv(config *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
		config.ResetSecretKey = v
	}
	if v := os.Getenv("AUTH_SERVICE_SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("AUTH_DB_URL"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("AUTH_ENDPOINT_ADDR"); v != "" {
		config.EndpointAddr = v
	}
}
