package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays CREWBASE_* environment variables onto the config.
// Variables that are not set leave the current value in place.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
