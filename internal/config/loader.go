package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/summit1123/kb-ai-challenge-Fortress-AI/internal/types"
)

// Loader handles loading configuration from files.
type Loader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperLoader implements Loader using Viper.
type viperLoader struct {
	validator Validator
}

// NewLoader creates a new Loader instance.
func NewLoader(validator Validator) Loader {
	return &viperLoader{
		validator: validator,
	}
}

// Load loads configuration from the specified file path. Values may
// reference environment variables with ${VAR_NAME} syntax.
func (l *viperLoader) Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED,
			"failed to read config file", err)
	}

	// Interpolate ${ENV} references in the raw settings, then unmarshal
	// the interpolated tree on top of the defaults.
	raw := interpolateEnvVars(v.AllSettings())
	settings, _ := raw.(map[string]interface{})

	merged := viper.New()
	if err := merged.MergeConfigMap(settings); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED,
			"failed to merge config", err)
	}

	cfg := DefaultConfig()
	if err := merged.Unmarshal(cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED,
			"failed to unmarshal config", err)
	}

	if err := l.validator.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration.
func (l *viperLoader) LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := l.validator.Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return l.Load(path)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolateEnvVars recursively interpolates environment variables in
// the config tree. Supports ${VAR_NAME} syntax; unset variables are
// left as-is.
func interpolateEnvVars(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			result[key] = interpolateEnvVars(value)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, value := range v {
			result[i] = interpolateEnvVars(value)
		}
		return result
	case string:
		return interpolateString(v)
	default:
		return v
	}
}

// interpolateString replaces ${VAR_NAME} with environment variable values.
func interpolateString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if envValue := os.Getenv(varName); envValue != "" {
			return envValue
		}
		return match
	})
}
