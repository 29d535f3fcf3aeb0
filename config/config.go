package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/reload/errors"
	"github.com/grovetools/reload/logging"
)

// Format is the syntax of a configuration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FileNames are searched, in order, in each directory from the start
// directory up to the filesystem root.
var FileNames = []string{
	"reload.yml",
	"reload.yaml",
	"reload.toml",
	"config.yaml",
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// FormatForPath picks the format from the file extension. Anything that is
// not .toml is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads and parses a reload configuration file. Relative paths in the
// file are resolved against the file's directory.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to resolve config path").
			WithDetail("path", path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	logging.NewLogger("config").WithField("path", abs).Debug("Loading configuration")

	cfg, err := LoadFromBytes(data, FormatForPath(abs))
	if err != nil {
		if reloadErr, ok := errors.As(err); ok {
			return nil, reloadErr.WithDetail("path", abs)
		}
		return nil, err
	}
	cfg.file = abs
	return cfg, nil
}

// LoadDefault finds the configuration file from the current directory
// upwards and loads it.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	path, err := FindConfigFile(cwd)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// LoadFromBytes parses configuration from a byte array.
func LoadFromBytes(data []byte, format Format) (*Config, error) {
	// Expand environment variables
	expanded := expandEnvVars(string(data))

	raw, err := decodeRaw([]byte(expanded), format)
	if err != nil {
		return nil, err
	}
	normalizeVersion(raw)

	// Validate against schema
	v, err := schemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create validator")
	}
	if version, ok := raw["version"]; ok && version != SupportedVersion {
		return nil, errors.UnsupportedVersion(fmt.Sprint(version), SupportedVersion)
	}
	if err := v.Validate(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed")
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &config,
		DecodeHook:  durationHook(),
		ErrorUnused: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create mapstructure decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode configuration")
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if logger := logging.NewLogger("config"); logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		if out, err := yaml.Marshal(&config); err == nil {
			logger.Debugf("Resolved configuration:\n%s", string(out))
		}
	}

	return &config, nil
}

func decodeRaw(data []byte, format Format) (map[string]interface{}, error) {
	raw := make(map[string]interface{})
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown configuration format %q", format))
	}
	return raw, nil
}

// normalizeVersion accepts an unquoted `version: 0`.
func normalizeVersion(raw map[string]interface{}) {
	switch v := raw["version"].(type) {
	case int, int64, uint64, float64:
		raw["version"] = fmt.Sprint(v)
	}
}

// FindConfigFile searches for a reload configuration file from startDir up
// to the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ConfigNotFound(startDir).
		WithDetail("searched", strings.Join(FileNames, ", "))
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
