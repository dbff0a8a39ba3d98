package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration settings.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Rolls         RollsConfig         `yaml:"rolls"`
	Gates         GatesConfig         `yaml:"gates"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. NKeySeed is optional; empty disables
// nkey auth.
type NATSConfig struct {
	URL      string `yaml:"url"`
	NKeySeed string `yaml:"nkey_seed"`
}

// HTTPConfig holds the API listener configuration.
type HTTPConfig struct {
	Address string `yaml:"address"`
}

// RollsConfig holds the per-role roll caps. Zero values fall back to the
// season defaults.
type RollsConfig struct {
	TitleCap  int `yaml:"title_cap"`
	BannerCap int `yaml:"banner_cap"`
}

// GatesConfig holds the submission gates. Both default to closed.
type GatesConfig struct {
	PredictionsOpen bool `yaml:"predictions_open"`
	RosterOpen      bool `yaml:"roster_open"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is missing. Env vars override the file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_NKEY_SEED"); v != "" {
		cfg.NATS.NKeySeed = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("ROLL_TITLE_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Rolls.TitleCap = n
		}
	}
	if v := os.Getenv("ROLL_BANNER_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Rolls.BannerCap = n
		}
	}
	if v := os.Getenv("PREDICTIONS_OPEN"); v != "" {
		cfg.Gates.PredictionsOpen = v == "true"
	}
	if v := os.Getenv("ROSTER_OPEN"); v != "" {
		cfg.Gates.RosterOpen = v == "true"
	}
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	cfg.NATS.URL = os.Getenv("NATS_URL")
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	cfg.HTTP.Address = os.Getenv("HTTP_ADDRESS")
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}
