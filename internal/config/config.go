// Package config loads and validates the application configuration from a
// YAML file via viper, keeping a process-wide singleton the way the
// teacher's internal packages do.
package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var (
	once     sync.Once
	instance *Config
	err      error

	validate = validator.New()
)

// LoadConfig reads, unmarshals and validates the configuration at path,
// caching the result for subsequent calls. The first call's path wins for
// the lifetime of the singleton; call Reset to force a reload.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		instance, err = readConfig(path)
	})
	return instance, err
}

func readConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if loadErr := v.ReadInConfig(); loadErr != nil {
		return nil, fmt.Errorf("failed to read config file: %w", loadErr)
	}

	var cfg Config
	if unmarshalErr := v.Unmarshal(&cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	if validateErr := validate.Struct(&cfg); validateErr != nil {
		return nil, fmt.Errorf("failed to validate config: %w", validateErr)
	}

	return &cfg, nil
}

// Reset clears the configuration singleton, for use between tests.
func Reset() {
	once = sync.Once{}
	instance = nil
	err = nil
}
