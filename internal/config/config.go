// Package config provides Viper-based hierarchical configuration for the
// tap: defaults, an optional config file, and TAP_NOMAD_* environment
// variables, plus .env loading for local development.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	"fjacquet/tap-nomad/internal/logging"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file if one exists in
// the working directory or its parent. Missing files are not an error.
func LoadEnv(logger logging.Logger) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				logger.Debug("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file")
			return
		}
		logger.Info("Loaded environment variables",
			logging.Field{Key: logging.FieldFile, Value: envFile})
	})
}
