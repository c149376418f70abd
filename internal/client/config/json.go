package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/colisroute/colis/internal/flagx"
	"github.com/colisroute/colis/internal/timex"
)

// JsonConfig is the on-disk shape. Absent fields leave the current value alone.
type JsonConfig struct {
	Environment       string         `json:"environment"`
	BaseURL           string         `json:"base_url"`
	Timeout           timex.Duration `json:"timeout"`
	DataDir           string         `json:"data_dir"`
	StorageMode       string         `json:"storage_mode"`
	RequestsPerSecond float64        `json:"requests_per_second"`
	LogLevel          string         `json:"log_level"`
}

func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Environment != "" {
		cfg.Environment = ParseEnvironment(jc.Environment)
	}
	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.Timeout.Duration > 0 {
		cfg.Timeout = time.Duration(jc.Timeout.Duration)
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.StorageMode != "" {
		cfg.StorageMode = jc.StorageMode
	}
	if jc.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = jc.RequestsPerSecond
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
