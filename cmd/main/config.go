package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CTAG07/Bestiary/pkg/templating"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// DataConfig holds the input and output paths of a generation run.
type DataConfig struct {
	DataPath        string `json:"data_path" yaml:"data_path"`
	TemplatePath    string `json:"template_path" yaml:"template_path"`
	OutputPath      string `json:"output_path" yaml:"output_path"`
	FilterAttribute string `json:"filter_attribute" yaml:"filter_attribute"`
}

// CatalogConfig holds the settings of the SQLite record catalog.
type CatalogConfig struct {
	DatabasePath string `json:"database_path" yaml:"database_path"`
	// Dataset, when set, makes generate read records from the catalog
	// instead of the data file.
	Dataset string `json:"dataset" yaml:"dataset"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel  string                     `json:"log_level" yaml:"log_level"`
	Data      *DataConfig                `json:"data_config" yaml:"data_config"`
	Templates *templating.TemplateConfig `json:"template_config" yaml:"template_config"`
	Catalog   *CatalogConfig             `json:"catalog_config" yaml:"catalog_config"`
}

// DefaultDataConfig creates a data configuration with default values.
func DefaultDataConfig() *DataConfig {
	return &DataConfig{
		DataPath:        "animals_data.json",
		TemplatePath:    "animals_template.html",
		OutputPath:      "animals.html",
		FilterAttribute: "skin_type",
	}
}

// DefaultCatalogConfig creates a catalog configuration with default values.
func DefaultCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		DatabasePath: "bestiary.db",
	}
}

// DefaultConfig returns the complete default configuration.
func DefaultConfig() *Config {
	templates := templating.DefaultConfig()
	return &Config{
		LogLevel:  "info",
		Data:      DefaultDataConfig(),
		Templates: &templates,
		Catalog:   DefaultCatalogConfig(),
	}
}

// LoadConfig reads the configuration from a JSON or YAML file at the given
// path, picked by extension. Keys missing from the file keep their default
// values, and a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	// Initialize with default configurations
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(file, config)
	} else {
		err = json.Unmarshal(file, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A section set to null in the file falls back to its defaults.
	if config.Data == nil {
		config.Data = DefaultDataConfig()
	}
	if config.Templates == nil {
		templates := templating.DefaultConfig()
		config.Templates = &templates
	}
	if config.Catalog == nil {
		config.Catalog = DefaultCatalogConfig()
	}

	return config, nil
}

// WriteConfig atomically writes config to path, as YAML or JSON depending on
// the extension. An existing file is only replaced when overwrite is set.
func WriteConfig(path string, config *Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
