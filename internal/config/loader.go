package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"toolhub/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/toolhub"
	configFileName = "config.yaml"
)

// GetDefaultConfigPathOrPanic returns the per-user configuration directory.
func GetDefaultConfigPathOrPanic() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads config.yaml from the given directory, applying defaults
// for everything the file leaves unset. A missing file is not an error.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Config", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		logging.Info("Config", "Error loading config.yaml from %s: %s", configFilePath, err)
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}

	applyFallbacks(&config)
	if err := Validate(config); err != nil {
		return Config{}, err
	}

	logging.Info("Config", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// applyFallbacks restores defaults for fields an explicit config file set
// to their zero values.
func applyFallbacks(c *Config) {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Toolsets.Cache.MaxSize == 0 {
		c.Toolsets.Cache.MaxSize = DefaultMaxSize
	}
	if c.Toolsets.Cache.TTLMinutes == 0 {
		c.Toolsets.Cache.TTLMinutes = DefaultTTLMinutes
	}
}
