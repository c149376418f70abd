package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/colisroute/colis/internal/flagx"
)

// parseFlags reads the devserver flags:
//
//	-a string   listen address (e.g. ":8080")
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      auth attempts per minute per IP
//	-o string   comma-separated CORS origins
//	-l string   log level
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-r", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	validity := fs.Int("t", int(cfg.TokenValidity.Minutes()), "token validity (in minutes)")
	fs.IntVar(&cfg.AuthRatePerMinute, "r", cfg.AuthRatePerMinute, "auth requests per minute per client")
	origins := fs.String("o", strings.Join(cfg.AllowedOrigins, ","), "allowed CORS origins")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenValidity = time.Duration(*validity) * time.Minute
	cfg.AllowedOrigins = splitOrigins(*origins)
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
