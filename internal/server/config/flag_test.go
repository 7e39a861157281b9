package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags set",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-n", "cass1:9042,cass2:9042", "-k", "teamspace",
				"-s", "secret", "-t", "30", "-i", "appid", "-y", "appkey", "-m", "realm",
			},
			expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				CassandraHosts:              []string{"cass1:9042", "cass2:9042"},
				CassandraKeyspace:           "teamspace",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 30 * time.Minute,
				AuthAppID:                   "appid",
				AuthAppKey:                  "appkey",
				AuthRealm:                   "realm",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected, config)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
