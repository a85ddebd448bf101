// Package config provides configuration loading and management for
// twodsi. It handles loading configuration from YAML files and provides
// default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"twodsi/pkg/phase"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Reconstruction parameters
	Reconstruction struct {
		// PolyDegree is the polynomial degree used when detrending the
		// reconstructed phase
		PolyDegree int `yaml:"polyDegree"`

		// CalibrationOffset is a fixed scalar added to every resampled
		// group-delay value to compensate a known extraction bias
		CalibrationOffset float64 `yaml:"calibrationOffset"`
	} `yaml:"reconstruction"`

	// Output parameters
	Output struct {
		// SaveIntermediaryResults determines whether to save per-stage
		// intermediary tables
		SaveIntermediaryResults bool `yaml:"saveIntermediaryResults"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`

	// Simulate parameters for generating synthetic measurements
	Simulate struct {
		// FMin and FMax bound the simulated frequency support in Hz
		FMin float64 `yaml:"fMin"`
		FMax float64 `yaml:"fMax"`

		// Shear is the simulated shear in Hz
		Shear float64 `yaml:"shear"`

		// ReferenceFrequency is the simulated reference frequency in Hz
		ReferenceFrequency float64 `yaml:"referenceFrequency"`

		// Samples is the number of rows in the generated table
		Samples int `yaml:"samples"`

		// Coefficients holds the phase model polynomial coefficients in
		// ascending power order over f - ReferenceFrequency
		Coefficients []float64 `yaml:"coefficients"`
	} `yaml:"simulate"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default reconstruction parameters
	cfg.Reconstruction.PolyDegree = phase.DefaultFitDegree
	cfg.Reconstruction.CalibrationOffset = 0

	// Set default output parameters
	cfg.Output.SaveIntermediaryResults = false
	cfg.Output.Verbose = true

	// Set default simulation parameters: a 101-point grid around a
	// 2.6e14 Hz carrier with a pure quadratic phase
	cfg.Simulate.FMin = 2.1e14
	cfg.Simulate.FMax = 3.1e14
	cfg.Simulate.Shear = 1.0e12
	cfg.Simulate.ReferenceFrequency = 2.6e14
	cfg.Simulate.Samples = 101
	cfg.Simulate.Coefficients = []float64{0, 0, 1e-28}

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
