package config

// Config represents the application configuration
type Config struct {
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Directory overrides the destination for top-level extraction.
	// Empty means "next to the source archive".
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// ExtractConfig contains extraction behavior settings
type ExtractConfig struct {
	// Recursive walks the extracted tree and unpacks nested archives
	Recursive bool `mapstructure:"recursive" yaml:"recursive"`

	// Delete removes source archives found during the walk after a
	// successful extraction. The top-level source file is never deleted.
	Delete bool `mapstructure:"delete" yaml:"delete"`

	// CreateDir gives each nested tar archive its own directory
	CreateDir bool `mapstructure:"create_dir" yaml:"create_dir"`

	// GzCreateDir gives each nested gzip file its own directory
	GzCreateDir bool `mapstructure:"gz_create_dir" yaml:"gz_create_dir"`

	// MaxDepth bounds the nested-archive recursion
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration, clamping out-of-range values
func (c *Config) Validate() error {
	if c.Extract.MaxDepth < 1 {
		c.Extract.MaxDepth = DefaultMaxDepth
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
