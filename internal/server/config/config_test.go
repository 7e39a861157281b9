package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, []string{"127.0.0.1:9042"}, c.CassandraHosts)
	assert.Equal(t, "crewbase", c.CassandraKeyspace)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "crewbase", c.AuthAppID)
	assert.Equal(t, "dev-app-key", c.AuthAppKey)
	assert.Equal(t, "crewbase@localhost", c.AuthRealm)
	assert.Equal(t, "en-US", c.DefaultLocale)
	assert.Equal(t, "UTC", c.DefaultTimeZone)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "crewbase", c.CassandraKeyspace)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("CREWBASE_HTTP_ADDR", ":9090")
	t.Setenv("CREWBASE_CASSANDRA_HOSTS", "cass1:9042,cass2:9042")
	t.Setenv("CREWBASE_AUTH_REALM", "crewbase@prod")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":9090", c.EndpointAddrHTTP)
	assert.Equal(t, []string{"cass1:9042", "cass2:9042"}, c.CassandraHosts)
	assert.Equal(t, "crewbase@prod", c.AuthRealm)
	// untouched vars keep their defaults
	assert.Equal(t, "secretKey", c.SecretKey)
}
