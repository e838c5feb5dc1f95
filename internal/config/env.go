package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// FromEnv loads balance configuration from MONEYPATH_* environment variables
// layered over the defaults. MONEYPATH_DIFFICULTY selects a preset base
// ("casual", "hard") before the per-field variables apply.
func FromEnv() (Balance, error) {
	cfg := Default()
	switch os.Getenv("MONEYPATH_DIFFICULTY") {
	case "casual":
		cfg = Casual()
	case "hard":
		cfg = Hard()
	}

	if err := env.Parse(&cfg); err != nil {
		return Balance{}, fmt.Errorf("parse balance env: %w", err)
	}
	return cfg, nil
}
