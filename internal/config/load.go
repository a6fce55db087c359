package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-notes/internal/parser"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SCRY"

// ConfigFileEnv names the environment variable that points Load at a config file.
const ConfigFileEnv = EnvPrefix + "_CONFIG_FILE"

// ErrInvalidConfig is returned when configuration cannot be read or fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load configuration from environment variables and optionally a config file.
// The file is taken from SCRY_CONFIG_FILE, falling back to an optional
// scry.yaml in the working directory.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFromFile(os.Getenv(ConfigFileEnv))
}

// LoadFromFile is like Load but reads the given config file, which must exist
// when path is not empty.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("scry")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: failed to read config file: %w", ErrInvalidConfig, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode configuration: %w", ErrInvalidConfig, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: validation failed: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Every key needs a default so that AutomaticEnv can find it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")

	v.SetDefault("parser.single_line_separator", parser.DefaultSingleLineSeparator)
	v.SetDefault("parser.single_line_reversed_separator", parser.DefaultSingleLineReversedSeparator)
	v.SetDefault("parser.multi_line_separator", parser.DefaultMultiLineSeparator)
	v.SetDefault("parser.multi_line_reversed_separator", parser.DefaultMultiLineReversedSeparator)
	v.SetDefault("parser.file_separator", parser.DefaultFileSeparator)
	v.SetDefault("parser.heading_separator", parser.DefaultHeadingSeparator)
	v.SetDefault("parser.convert_highlights_to_clozes", true)
	v.SetDefault("parser.convert_bold_text_to_clozes", true)
	v.SetDefault("parser.convert_curly_brackets_to_clozes", false)

	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.queue_size", 64)
	v.SetDefault("batch.tags", []string{})
}
