package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	configPathEnv     = "CONFIG_PATH"
	defaultConfigPath = "./config.yaml"
)

// Load reads configuration using CONFIG_PATH (fallback "./config.yaml").
// Priority: ENV > YAML > env-default tags. A missing default file is not an
// error; a missing file named by CONFIG_PATH is.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv(configPathEnv)
	if !explicit || path == "" {
		return LoadFrom(defaultConfigPath, false)
	}
	return LoadFrom(path, true)
}

// LoadFrom reads configuration from path. When required is false and the file
// does not exist, only ENV and defaults are used.
func LoadFrom(path string, required bool) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case errors.Is(statErr, fs.ErrNotExist) && !required:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
