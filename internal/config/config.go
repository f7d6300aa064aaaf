// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// API configures the HTTP server process.
type API struct {
	Addr        string `env:"MOGUL_ADDR" envDefault:":8080"`
	DatabaseURL string `env:"MOGUL_DATABASE_URL"`
	RNGSeed     int64  `env:"MOGUL_RNG_SEED"`
	LogLevel    string `env:"MOGUL_LOG_LEVEL" envDefault:"info"`
}

// Worker configures the idle-session sweeper process.
type Worker struct {
	DatabaseURL   string        `env:"MOGUL_DATABASE_URL"`
	SweepInterval time.Duration `env:"MOGUL_SWEEP_INTERVAL" envDefault:"5m"`
	IdleAfter     time.Duration `env:"MOGUL_IDLE_AFTER" envDefault:"24h"`
	RunOnce       bool          `env:"MOGUL_RUN_ONCE"`
	LogLevel      string        `env:"MOGUL_LOG_LEVEL" envDefault:"info"`
}

// LoadAPI parses API config from the environment. PORT, when set,
// overrides the listen address for platform runtimes that inject it.
func LoadAPI() (API, error) {
	var cfg API
	if err := env.Parse(&cfg); err != nil {
		return API{}, fmt.Errorf("parse env: %w", err)
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	return cfg, nil
}

func LoadWorker() (Worker, error) {
	var cfg Worker
	if err := env.Parse(&cfg); err != nil {
		return Worker{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// CLI configures the mgl client.
type CLI struct {
	APIBaseURL string `env:"MGL_API_BASE_URL" envDefault:"http://localhost:8080"`
}

func LoadCLI() CLI {
	var cfg CLI
	if err := env.Parse(&cfg); err != nil {
		return CLI{APIBaseURL: "http://localhost:8080"}
	}
	return cfg
}
