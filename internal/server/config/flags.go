package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/crewbase/crewbase/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-n string   comma-separated Cassandra contact points
//	-k string   Cassandra keyspace
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-i string   auth app id
//	-y string   auth app key
//	-m string   auth realm
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-n", "-k", "-s", "-t", "-i", "-y", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	hosts := fs.String("n", strings.Join(config.CassandraHosts, ","), "comma-separated Cassandra contact points")
	fs.StringVar(&config.CassandraKeyspace, "k", config.CassandraKeyspace, "Cassandra keyspace")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.AuthAppID, "i", config.AuthAppID, "auth app id")
	fs.StringVar(&config.AuthAppKey, "y", config.AuthAppKey, "auth app key")
	fs.StringVar(&config.AuthRealm, "m", config.AuthRealm, "auth realm")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CassandraHosts = strings.Split(*hosts, ",")
	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
