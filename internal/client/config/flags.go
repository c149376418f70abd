package config

import (
	"flag"
	"os"
	"time"

	"github.com/colisroute/colis/internal/flagx"
)

// parseFlags only looks at the flags it owns; see flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-m", "-d", "-env-name"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StorageMode, "m", cfg.StorageMode, "session storage mode: plain, secure or auto")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	env := fs.String("env-name", string(cfg.Environment), "environment: development or production")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Timeout = time.Duration(*timeout) * time.Second
	cfg.Environment = ParseEnvironment(*env)
}
