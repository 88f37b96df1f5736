package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/storefront/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-addr string   HTTP bind address (e.g., ":8080")
//	-secret string JWT HMAC secret key
//	-ttl int       session token validity, minutes
//
// Other flags are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-addr", "-secret", "-ttl"})

	fs := flag.NewFlagSet("fakeapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "secret", cfg.SecretKey, "secret key")
	ttl := fs.Int("ttl", int(cfg.TokenTTL.Minutes()), "token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	cfg.TokenTTL = time.Duration(*ttl) * time.Minute
}
