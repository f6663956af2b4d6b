package logging

// Config is the `logging:` section of the shell-scene config file.
type Config struct {
	// Level is the minimum log level to output (trace, debug, info, warn, error).
	// Overridden by SHELL_SCENE_LOG_LEVEL and the --log / --verbose flags.
	Level string `yaml:"level,omitempty" toml:"level,omitempty" mapstructure:"level" json:"level,omitempty" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,description=Minimum log level"`

	// ReportCaller, if true, includes the file, line, and function name in the log output.
	ReportCaller bool `yaml:"report_caller,omitempty" toml:"report_caller,omitempty" mapstructure:"report_caller" json:"report_caller,omitempty" jsonschema:"description=Include file and line of the log call"`

	// File configures logging to a file.
	File FileSinkConfig `yaml:"file,omitempty" toml:"file,omitempty" mapstructure:"file" json:"file,omitempty" jsonschema:"description=Optional log file sink"`

	// Format configures the appearance of the log output.
	Format FormatConfig `yaml:"format,omitempty" toml:"format,omitempty" mapstructure:"format" json:"format,omitempty" jsonschema:"description=Log output format"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	Enabled bool `yaml:"enabled,omitempty" toml:"enabled,omitempty" mapstructure:"enabled" json:"enabled,omitempty"`
	// Path is the full path to the log file. ~ is expanded.
	Path string `yaml:"path,omitempty" toml:"path,omitempty" mapstructure:"path" json:"path,omitempty"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (text) or "json".
	Preset string `yaml:"preset,omitempty" toml:"preset,omitempty" mapstructure:"preset" json:"preset,omitempty" jsonschema:"enum=default,enum=json"`
	// Timestamp prefixes text log lines with the time.
	Timestamp bool `yaml:"timestamp,omitempty" toml:"timestamp,omitempty" mapstructure:"timestamp" json:"timestamp,omitempty"`
	// DisableComponent hides the component name in text output.
	DisableComponent bool `yaml:"disable_component,omitempty" toml:"disable_component,omitempty" mapstructure:"disable_component" json:"disable_component,omitempty"`
}
