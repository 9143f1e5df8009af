package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every application setting. Values load from YAML first, then
// environment variables override the ones that are set.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Database struct {
		// Path of the SQLite file. Empty means the per-user data directory.
		Path string `yaml:"path"`
	} `yaml:"database"`

	Server struct {
		// Port for the local change-notification endpoint the desktop
		// shell subscribes to. Bound to localhost only.
		Port int `yaml:"port"`
	} `yaml:"server"`

	Images struct {
		// Longest edge of stored coin photographs, in pixels.
		MaxSizePX int `yaml:"max_size_px"`
	} `yaml:"images"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Images.MaxSizePX <= 0 {
		return fmt.Errorf("image max size must be positive")
	}
	return nil
}

// overrideWithEnv applies environment variable overrides where present.
func overrideWithEnv(cfg *Config) {
	if path := os.Getenv("NUMIS_DB_PATH"); path != "" {
		cfg.Database.Path = path
	}
	if level := os.Getenv("NUMIS_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
