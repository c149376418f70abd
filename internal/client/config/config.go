package config

import (
	"time"

	"github.com/colisroute/colis/internal/filex"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// ParseEnvironment maps anything other than "production" to development.
func ParseEnvironment(s string) Environment {
	if Environment(s) == Production {
		return Production
	}
	return Development
}

// Endpoint is the per-environment backend location.
type Endpoint struct {
	BaseURL string
	Timeout time.Duration
}

var Endpoints = map[Environment]Endpoint{
	Development: {BaseURL: "http://192.168.1.16:8080", Timeout: 15 * time.Second},
	Production:  {BaseURL: "http://84.46.254.94:8080", Timeout: 30 * time.Second},
}

type Config struct {
	Environment       Environment
	BaseURL           string
	Timeout           time.Duration
	DataDir           string
	StorageMode       string
	StoragePassphrase string
	// RequestsPerSecond paces outgoing calls; 0 disables pacing.
	RequestsPerSecond float64
	LogLevel          string
}

func (c *Config) LoadDefaults() {
	c.Environment = Development
	c.DataDir = filex.DefaultDataDir()
	c.StorageMode = "auto"
	c.LogLevel = "info"
}

// resolve fills what the environment table provides.
func (c *Config) resolve() {
	c.Environment = ParseEnvironment(string(c.Environment))
	ep := Endpoints[c.Environment]
	if c.BaseURL == "" {
		c.BaseURL = ep.BaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = ep.Timeout
	}
}

// LoadConfig applies defaults, dotenv, JSON and flags in that order.
// It panics on unreadable or malformed sources.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	cfg.resolve()
	return cfg
}
