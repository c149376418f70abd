package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/colisroute/colis/internal/flagx"
	"github.com/colisroute/colis/internal/timex"
)

// JsonConfig is the on-disk shape; durations accept "24h" or nanoseconds.
type JsonConfig struct {
	Addr              string         `json:"addr"`
	SecretKey         string         `json:"secret_key"`
	TokenValidity     timex.Duration `json:"token_validity"`
	AuthRatePerMinute int            `json:"auth_rate_per_minute"`
	AllowedOrigins    []string       `json:"allowed_origins"`
	MaxUploadBytes    int64          `json:"max_upload_bytes"`
	LogLevel          string         `json:"log_level"`
}

// parseJson overlays the file named by -c/-config. It panics on an
// unreadable or malformed file.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var c JsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		panic(err)
	}

	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.SecretKey != "" {
		cfg.SecretKey = c.SecretKey
	}
	if c.TokenValidity.Duration > 0 {
		cfg.TokenValidity = time.Duration(c.TokenValidity.Duration)
	}
	if c.AuthRatePerMinute > 0 {
		cfg.AuthRatePerMinute = c.AuthRatePerMinute
	}
	if len(c.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = c.AllowedOrigins
	}
	if c.MaxUploadBytes > 0 {
		cfg.MaxUploadBytes = c.MaxUploadBytes
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
}
