// Package config provides configuration loading for the videosnap CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI defaults. The library itself takes plain
// arguments and never reads configuration.
type Config struct {
	// Output is the destination JPEG path.
	Output string `yaml:"output"`

	// Quality is the MJPEG quantizer (2-31, lower is better quality).
	// Zero keeps the encoder default.
	Quality int `yaml:"quality"`

	// Label is an optional caption stamped onto the snapshot.
	Label string `yaml:"label"`

	// LogLevel is one of disabled, error, warn, info, debug, trace.
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Output:   "snapshot.jpg",
		LogLevel: "error",
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}
