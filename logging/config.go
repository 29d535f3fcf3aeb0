package logging

import "os"

// Config defines how component loggers are built.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Read from RELOAD_LOG_LEVEL.
	Level string `yaml:"level"`

	// ReportCaller, if true, includes the file, line, and function name in the log output.
	// Enabled with RELOAD_LOG_CALLER=true.
	ReportCaller bool `yaml:"report_caller"`

	// Format configures the appearance of the log output.
	Format FormatConfig `yaml:"format"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset string `yaml:"preset"`
	// DisableTimestamp disables the timestamp from the "default" and "simple" formats.
	DisableTimestamp bool `yaml:"disable_timestamp"`
	// DisableComponent disables the component name from the "default" and "simple" formats.
	DisableComponent bool `yaml:"disable_component"`
	// StructuredToStderr controls when structured logs are sent to the output.
	// Can be "auto" (default), "always", or "never".
	StructuredToStderr string `yaml:"structured_to_stderr"`
}

// ConfigFromEnv reads the RELOAD_LOG_* environment variables.
func ConfigFromEnv() Config {
	cfg := Config{
		Level:        os.Getenv("RELOAD_LOG_LEVEL"),
		ReportCaller: os.Getenv("RELOAD_LOG_CALLER") == "true",
	}
	cfg.Format.Preset = os.Getenv("RELOAD_LOG_FORMAT")
	cfg.Format.StructuredToStderr = os.Getenv("RELOAD_LOG_STDERR")
	return cfg
}
