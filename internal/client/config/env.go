package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/colisroute/colis/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvEnvironment       = "COLIS_ENV"
	EnvAPIURL            = "COLIS_API_URL"
	EnvStoragePassphrase = "COLIS_STORAGE_PASSPHRASE"
	EnvLogLevel          = "COLIS_LOG_LEVEL"
)

func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v := os.Getenv(EnvEnvironment); v != "" {
		cfg.Environment = ParseEnvironment(v)
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvStoragePassphrase); v != "" {
		cfg.StoragePassphrase = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
