// Package config handles configuration for the development backend:
// defaults, JSON overlay and command-line flags.
package config

import "time"

// Config holds runtime settings for the devserver.
//
// SecretKey signs the HS256 access tokens; the default is for local use only.
// AuthRatePerMinute limits auth attempts per client IP (0 disables the limit).
type Config struct {
	Addr              string
	SecretKey         string
	TokenValidity     time.Duration
	AuthRatePerMinute int
	AllowedOrigins    []string
	MaxUploadBytes    int64
	LogLevel          string
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = "dev-secret-key"
	c.TokenValidity = 24 * time.Hour
	c.AuthRatePerMinute = 30
	c.AllowedOrigins = []string{"http://localhost:8081", "http://localhost:19006"}
	c.MaxUploadBytes = 10 << 20
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the optional JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
