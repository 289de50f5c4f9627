// Package config loads application configuration from TOML, YAML, or JSON
// files, layered under environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// ConfigRepositoryImpl implements repository.ConfigRepository.
type ConfigRepositoryImpl struct{}

var _ repository.ConfigRepository = (*ConfigRepositoryImpl)(nil)

func NewConfigRepository() *ConfigRepositoryImpl {
	// Secrets live in the environment; a .env in the working directory is
	// a convenience, never a requirement.
	_ = godotenv.Load()
	return &ConfigRepositoryImpl{}
}

// LoadConfig reads configFile (format chosen by extension) and then lets
// environment variables override file values. An empty configFile loads
// defaults plus environment only.
func (r *ConfigRepositoryImpl) LoadConfig(configFile string) (*types.Config, error) {
	cfg := defaultConfig()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		switch strings.ToLower(filepath.Ext(configFile)) {
		case ".toml":
			err = toml.Unmarshal(data, cfg)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, cfg)
		case ".json":
			err = json.Unmarshal(data, cfg)
		default:
			return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(configFile))
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", configFile, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaultConfig() *types.Config {
	return &types.Config{
		BaseDir:    ".",
		ReportName: "market-insights",
		MaxCalls:   60,
		CooldownMS: 1000,
	}
}

func applyEnv(cfg *types.Config) {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.GoogleAPIKey = v
	}
	if v := os.Getenv("COMTRADE_API_KEY"); v != "" {
		cfg.ComtradeAPIKey = v
	}
	if v := os.Getenv("EXCHANGE_API_KEY"); v != "" {
		cfg.ExchangeAPIKey = v
	}
	if v := os.Getenv("MI_BASE_DIR"); v != "" {
		cfg.BaseDir = v
	}
	if v := os.Getenv("MI_MAX_CALLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxCalls = n
		}
	}
}
