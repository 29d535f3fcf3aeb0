package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/mitchellh/mapstructure"
)

// SupportedVersion is the only configuration version this build reads.
const SupportedVersion = "0"

// Config is the top-level reload configuration file.
type Config struct {
	Version string        `yaml:"version" toml:"version" mapstructure:"version" jsonschema:"required,enum=0,description=Configuration format version (must be \"0\")"`
	Paths   []WatchConfig `yaml:"paths" toml:"paths" mapstructure:"paths" jsonschema:"description=Paths to watch and the command each one restarts"`

	// file is the absolute path the config was loaded from, if any.
	file string
}

// WatchConfig is one entry of the paths list.
type WatchConfig struct {
	Path        string    `yaml:"path" toml:"path" mapstructure:"path" jsonschema:"required,minLength=1,description=File or directory to watch recursively"`
	Pattern     string    `yaml:"pattern" toml:"pattern" mapstructure:"pattern" jsonschema:"required,minLength=1,description=Glob matched against changed paths (e.g. '*.go' or 'src/**/*.rs')"`
	Command     []string  `yaml:"command" toml:"command" mapstructure:"command" jsonschema:"required,minItems=1,description=Program and arguments to run"`
	WorkingDir  string    `yaml:"working_dir,omitempty" toml:"working_dir,omitempty" mapstructure:"working_dir" jsonschema:"description=Working directory of the command (default: reload's own)"`
	Name        string    `yaml:"name,omitempty" toml:"name,omitempty" mapstructure:"name" jsonschema:"description=Label used in logs (default: the path)"`
	Ignore      []string  `yaml:"ignore,omitempty" toml:"ignore,omitempty" mapstructure:"ignore" jsonschema:"description=Dockerignore-style patterns relative to path that never trigger a restart"`
	Env         []string  `yaml:"env,omitempty" toml:"env,omitempty" mapstructure:"env" jsonschema:"description=Extra KEY=VALUE entries added to the command environment"`
	KillTimeout *Duration `yaml:"kill_timeout,omitempty" toml:"kill_timeout,omitempty" mapstructure:"kill_timeout" jsonschema:"description=Grace period between SIGTERM and SIGKILL (default: 5s)"`
	Debounce    *Duration `yaml:"debounce,omitempty" toml:"debounce,omitempty" mapstructure:"debounce" jsonschema:"description=Window for coalescing change notifications (default: 200ms)"`
}

// File returns the path the configuration was loaded from, or "" when it
// was parsed from bytes.
func (c *Config) File() string { return c.file }

// Duration is a time.Duration written as a Go duration string ("5s").
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalYAML writes the duration in its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// JSONSchema describes the string form.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Pattern:     `^(0|([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+)$`,
		Description: "Duration such as 500ms, 5s or 1m30s",
	}
}

var durationType = reflect.TypeOf(Duration(0))

// durationHook lets mapstructure decode duration strings into Duration.
func durationHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != durationType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("invalid duration %q: %w", v, err)
			}
			return Duration(d), nil
		default:
			return data, nil
		}
	}
}
