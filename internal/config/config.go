// Package config handles application configuration via environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"habitdash/internal/constants"
)

// Config holds all configurable values for the app.
type Config struct {
	BaseURL   string
	Flavor    constants.APIFlavor
	UserID    string
	Timeout   time.Duration
	Debug     bool
	ConfigDir string
}

// Load reads environment variables (and an optional .env file in the working
// directory) and populates a Config. Unset values fall back to defaults; the
// default base URL depends on the selected API flavor.
func Load() (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	flavor := constants.APIFlavor(getEnv(constants.EnvFlavor, string(constants.FlavorDetailed)))
	switch flavor {
	case constants.FlavorDetailed, constants.FlavorSimple:
	default:
		return nil, fmt.Errorf("invalid %s: %q (expected %q or %q)",
			constants.EnvFlavor, flavor, constants.FlavorDetailed, constants.FlavorSimple)
	}

	defaultBase := constants.DefaultBaseURLDetailed
	if flavor == constants.FlavorSimple {
		defaultBase = constants.DefaultBaseURLSimple
	}

	timeout := constants.DefaultRequestTimeout
	if raw := os.Getenv(constants.EnvTimeout); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", constants.EnvTimeout, err)
		}
		timeout = parsed
	}

	return &Config{
		BaseURL:   getEnv(constants.EnvBaseURL, defaultBase),
		Flavor:    flavor,
		UserID:    os.Getenv(constants.EnvUserID),
		Timeout:   timeout,
		Debug:     os.Getenv(constants.EnvDebug) != "",
		ConfigDir: defaultConfigDir(),
	}, nil
}

// CachePath returns the location of the local read cache database.
func (c *Config) CachePath() string {
	return filepath.Join(c.ConfigDir, "cache.db")
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", constants.AppName)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
