package feed

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeout         = 25   // seconds
	DefaultRefreshInterval = 3600 // seconds
)

func DefaultConfig() *Config {
	return &Config{
		URL: DefaultFeedURL,
		Settings: ConfigSettings{
			Timeout:         DefaultTimeout,
			RefreshInterval: DefaultRefreshInterval,
		},
		Sections: append([]ConfigSection(nil), DefaultSections...),
	}
}

// LoadConfig reads the feed definition from configFile. An empty path or a
// missing file yields DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	if configFile == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configFile)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("Feed definition not found, using defaults", "path", configFile)
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	feedConfig, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(feedConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	slog.Debug("Feed definition loaded",
		"path", configFile,
		"url", feedConfig.URL,
		"sections", len(feedConfig.Sections),
		"refresh_interval", feedConfig.Settings.RefreshInterval)

	return feedConfig, nil
}

func parseConfig(data []byte) (*Config, error) {
	var feedConfig Config
	if err := yaml.Unmarshal(data, &feedConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if feedConfig.URL == "" {
		feedConfig.URL = DefaultFeedURL
	}
	if feedConfig.Settings.Timeout == 0 {
		feedConfig.Settings.Timeout = DefaultTimeout
	}
	if feedConfig.Settings.RefreshInterval == 0 {
		feedConfig.Settings.RefreshInterval = DefaultRefreshInterval
	}
	if len(feedConfig.Sections) == 0 {
		feedConfig.Sections = append([]ConfigSection(nil), DefaultSections...)
	}

	return &feedConfig, nil
}

func validateConfig(feedConfig *Config) error {
	if feedConfig == nil {
		return fmt.Errorf("feedConfig is nil")
	}

	nonNegativeFields := map[string]int{
		"timeout":          feedConfig.Settings.Timeout,
		"refresh interval": feedConfig.Settings.RefreshInterval,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	keys := make(map[string]bool, len(feedConfig.Sections))
	categories := make(map[string]bool, len(feedConfig.Sections))

	for i, section := range feedConfig.Sections {
		if section.Key == "" || section.CategoryID == "" {
			return fmt.Errorf("section at index %d must have key and category_id", i)
		}
		if keys[section.Key] {
			return fmt.Errorf("duplicate section key at index %d: %s", i, section.Key)
		}
		if categories[section.CategoryID] {
			return fmt.Errorf("duplicate category_id at index %d: %s", i, section.CategoryID)
		}
		keys[section.Key] = true
		categories[section.CategoryID] = true
	}

	return nil
}
