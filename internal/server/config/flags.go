package config

import (
	"flag"
	"os"
	"time"

	"github.com/campdir/campdir/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5050")
//	-d string   PostgreSQL DSN
//	-e string   deployment mode ("development" or "production")
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-y int      token cookie validity, days
//	-u string   public base URL for reset links
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the -c/-config flags handled by
// the JSON layer.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-e", "-s", "-t", "-y", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.Env, "e", config.Env, "deployment mode")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	cookieValidity := fs.Int("y", int(config.CookieValidityDuration.Hours()/24), "token cookie validity (in days)")

	fs.StringVar(&config.PublicBaseURL, "u", config.PublicBaseURL, "public base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.CookieValidityDuration = time.Duration(*cookieValidity) * 24 * time.Hour
}
