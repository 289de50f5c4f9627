package repository

import "github.com/dysin/market-insights-go/internal/shared/types"

// ConfigRepository loads configuration from a file, with environment
// variables filling in anything the file leaves empty.
type ConfigRepository interface {
	LoadConfig(configFile string) (*types.Config, error)
}
