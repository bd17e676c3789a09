// Package config provides configuration loading and management for plotgeom.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration loaded from YAML
type Config struct {
	// Profile tool parameters
	Profile struct {
		// LineWidth is the profile band width in image pixels (0..1000)
		LineWidth int `yaml:"lineWidth"`

		// OverlayColor is the color of the ROI polygon drawn on the image
		OverlayColor string `yaml:"overlayColor"`

		// ClipOverlay restricts the ROI polygon to the image rectangle
		ClipOverlay bool `yaml:"clipOverlay"`
	} `yaml:"profile"`

	// Mesh generation parameters
	Mesh struct {
		// CylinderFaces is the number of side faces of generated cylinders
		CylinderFaces int `yaml:"cylinderFaces"`

		// HexagonPhase rotates generated hexagons, in degrees
		HexagonPhase float64 `yaml:"hexagonPhase"`

		// Color is the RGBA color of generated shapes
		Color [4]float32 `yaml:"color"`
	} `yaml:"mesh"`

	// Output parameters
	Output struct {
		// STLBinary selects binary STL output instead of ASCII
		STLBinary bool `yaml:"stlBinary"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Profile.LineWidth = 1
	cfg.Profile.OverlayColor = "red"
	cfg.Profile.ClipOverlay = false

	cfg.Mesh.CylinderFaces = 20
	cfg.Mesh.HexagonPhase = 0
	cfg.Mesh.Color = [4]float32{1, 1, 1, 1}

	cfg.Output.STLBinary = true
	cfg.Output.Verbose = false

	return cfg
}

// Validate checks settings are within the ranges the tools accept
func (cfg *Config) Validate() error {
	if cfg.Profile.LineWidth < 0 || cfg.Profile.LineWidth > 1000 {
		return fmt.Errorf("%w: profile.lineWidth %d not in [0, 1000]", ErrInvalidConfig, cfg.Profile.LineWidth)
	}
	if cfg.Mesh.CylinderFaces < 1 {
		return fmt.Errorf("%w: mesh.cylinderFaces must be at least 1, got %d", ErrInvalidConfig, cfg.Mesh.CylinderFaces)
	}
	for i, c := range cfg.Mesh.Color {
		if c < 0 || c > 1 {
			return fmt.Errorf("%w: mesh.color[%d] = %g not in [0, 1]", ErrInvalidConfig, i, c)
		}
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
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

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

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
