// Package config handles configuration for the server component, layered as
// defaults, then an optional JSON file, then environment variables, then
// command-line flags.
package config

import "time"

// Config holds runtime settings for the Crewbase server.
type Config struct {
	EndpointAddrHTTP            string        `env:"CREWBASE_HTTP_ADDR"`
	CassandraHosts              []string      `env:"CREWBASE_CASSANDRA_HOSTS"`
	CassandraKeyspace           string        `env:"CREWBASE_CASSANDRA_KEYSPACE"`
	SecretKey                   string        `env:"CREWBASE_SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"CREWBASE_ACCESS_TOKEN_VALIDITY"`

	// The fixed challenge triple shared with clients. Loaded at start and
	// never mutated afterwards.
	AuthAppID  string `env:"CREWBASE_AUTH_APP_ID"`
	AuthAppKey string `env:"CREWBASE_AUTH_APP_KEY"`
	AuthRealm  string `env:"CREWBASE_AUTH_REALM"`

	// Defaults written as follow-on provisioning after signup.
	DefaultLocale   string `env:"CREWBASE_DEFAULT_LOCALE"`
	DefaultTimeZone string `env:"CREWBASE_DEFAULT_TIMEZONE"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.CassandraHosts = []string{"127.0.0.1:9042"}
	c.CassandraKeyspace = "crewbase"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.AuthAppID = "crewbase"
	c.AuthAppKey = "dev-app-key"
	c.AuthRealm = "crewbase@localhost"
	c.DefaultLocale = "en-US"
	c.DefaultTimeZone = "UTC"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
