// Package config loads CLI configuration from an optional YAML file with
// environment overrides from a .env file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Env variable names recognized as overrides.
const (
	EnvDBPath = "RETAILDQ_DB"
	EnvRetier = "RETAILDQ_RETIER_ON_INGEST"
)

// Config holds the settings every command shares.
type Config struct {
	// DBPath locates the Reference Store database file.
	DBPath string `yaml:"db_path"`

	// RetierOnIngest controls whether transaction batches trigger an
	// automatic tier recomputation and view rebuild.
	RetierOnIngest bool `yaml:"retier_on_ingest"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:         "retaildq.db",
		RetierOnIngest: true,
	}
}

// Load reads configuration in precedence order: defaults, then the YAML
// file (if path is non-empty or ./retaildq.yaml exists), then .env /
// process environment overrides. A missing optional file is not an error;
// an explicitly named missing file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = "retaildq.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file; defaults apply.
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// .env is optional; process env always wins.
	_ = godotenv.Load()

	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvRetier); v != "" {
		cfg.RetierOnIngest = v == "1" || v == "true"
	}

	return cfg, nil
}
