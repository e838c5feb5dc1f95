package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version   string        `yaml:"version" json:"version"`
	Server    ServerConfig  `yaml:"server" json:"server"`
	Logging   LoggingConfig `yaml:"logging" json:"logging"`
	SeededRNG SeededRNG     `yaml:"seeded_rng" json:"seeded_rng"`

	// CatalogPath optionally replaces the built-in data tables.
	CatalogPath string `yaml:"catalog_path" json:"catalog_path"`

	// Balance overrides the built-in tuning when present.
	Balance *Balance `yaml:"balance" json:"balance,omitempty"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr" json:"addr"`
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// SeededRNG pins the engine's random source for reproducible runs.
type SeededRNG struct {
	Enabled bool  `yaml:"enabled" json:"enabled"`
	Seed    int64 `yaml:"seed" json:"seed"`
}

func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = ":8480"
	}
	if strings.TrimSpace(c.Server.DataDir) == "" {
		c.Server.DataDir = "data"
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = "info"
	}
}

// EffectiveBalance resolves the tuning this config selects: the embedded
// override when present, the defaults otherwise.
func (c *Config) EffectiveBalance() Balance {
	if c.Balance != nil {
		return *c.Balance
	}
	return Default()
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.ApplyDefaults()
	return &c, nil
}
