package config

import (
	"encoding/json"
	"os"

	"github.com/crewbase/crewbase/internal/flagx"
	"github.com/crewbase/crewbase/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON config
// files. Duration fields accept either "15m"-style strings or integer
// nanoseconds; after unmarshalling the values are copied into Config.
// Absent fields leave the current value in place.
type JsonConfig struct {
	EndpointAddrHTTP            string          `json:"endpoint_addr_http"`
	CassandraHosts              []string        `json:"cassandra_hosts"`
	CassandraKeyspace           string          `json:"cassandra_keyspace"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	AuthAppID                   string          `json:"auth_app_id"`
	AuthAppKey                  string          `json:"auth_app_key"`
	AuthRealm                   string          `json:"auth_realm"`
	DefaultLocale               string          `json:"default_locale"`
	DefaultTimeZone             string          `json:"default_time_zone"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag, when present. Read or parse failures panic: a named config
// file that cannot be used is a startup error, not something to run past.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if len(c.CassandraHosts) > 0 {
		config.CassandraHosts = c.CassandraHosts
	}
	if c.CassandraKeyspace != "" {
		config.CassandraKeyspace = c.CassandraKeyspace
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.AuthAppID != "" {
		config.AuthAppID = c.AuthAppID
	}
	if c.AuthAppKey != "" {
		config.AuthAppKey = c.AuthAppKey
	}
	if c.AuthRealm != "" {
		config.AuthRealm = c.AuthRealm
	}
	if c.DefaultLocale != "" {
		config.DefaultLocale = c.DefaultLocale
	}
	if c.DefaultTimeZone != "" {
		config.DefaultTimeZone = c.DefaultTimeZone
	}
}
