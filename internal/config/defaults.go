package config

import (
	"os"
	"path/filepath"
)

// Default values
const (
	// Extraction defaults
	DefaultRecursive   = true
	DefaultDelete      = false
	DefaultCreateDir   = true
	DefaultGzCreateDir = false
	DefaultMaxDepth    = 32

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".unpakr"
	}
	return filepath.Join(home, ".unpakr")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Directory: "",
		},
		Extract: ExtractConfig{
			Recursive:   DefaultRecursive,
			Delete:      DefaultDelete,
			CreateDir:   DefaultCreateDir,
			GzCreateDir: DefaultGzCreateDir,
			MaxDepth:    DefaultMaxDepth,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
