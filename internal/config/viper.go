package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fjacquet/tap-nomad/internal/logging"
	"fjacquet/tap-nomad/internal/models"
	"fjacquet/tap-nomad/internal/tabula"
)

// Config represents the complete tap configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	// Files is the inline list of statement sources. FilesDefinition
	// points at a JSON or YAML file holding the same list; when set it
	// replaces the inline list entirely.
	Files           []models.FileConfig `mapstructure:"files" yaml:"files"`
	FilesDefinition string              `mapstructure:"files_definition" yaml:"files_definition"`

	Tabula struct {
		JavaPath string `mapstructure:"java_path" yaml:"java_path"`
		JarPath  string `mapstructure:"jar_path" yaml:"jar_path"`
	} `mapstructure:"tabula" yaml:"tabula"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading: defaults, then an optional tap-nomad.yaml config file, then
// TAP_NOMAD_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("tap-nomad")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.tap-nomad")
	v.AddConfigPath(".tap-nomad")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TAP_NOMAD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Warnings go to stderr: stdout carries the message stream.
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("files", []models.FileConfig{})
	v.SetDefault("files_definition", "")

	v.SetDefault("tabula.java_path", tabula.DefaultJavaPath)
	v.SetDefault("tabula.jar_path", tabula.DefaultJarPath)

	v.SetDefault("csv.delimiter", ",")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Tabula.JavaPath == "" {
		return fmt.Errorf("tabula.java_path must not be empty")
	}
	if config.Tabula.JarPath == "" {
		return fmt.Errorf("tabula.jar_path must not be empty")
	}

	return nil
}

// LoggerFromConfig builds the tap's logger from the configured level
// and format.
func LoggerFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
