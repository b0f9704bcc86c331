package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/0xRadioAc7iv/go-quickdata/pkg/backend"
)

// Config holds the settings shared by the quickdata binaries.
type Config struct {
	Path      string `yaml:"path" validate:"required"`
	Sync      string `yaml:"sync" validate:"oneof=always never"`
	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`
}

const (
	DEFAULT_PATH       = "quickdata.qdt"
	DEFAULT_SYNC       = "always"
	DEFAULT_LOG_LEVEL  = "info"
	DEFAULT_LOG_FORMAT = "text"
)

var validate = validator.New()

func DefaultConfig() *Config {
	return &Config{
		Path:      DEFAULT_PATH,
		Sync:      DEFAULT_SYNC,
		LogLevel:  DEFAULT_LOG_LEVEL,
		LogFormat: DEFAULT_LOG_FORMAT,
	}
}

// LoadConfig reads a YAML file over the defaults. Fields missing from the
// file keep their default value.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	e := validationErrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("config: %s is required", e.Field())
	case "oneof":
		return fmt.Errorf("config: %s must be one of [%s], got %q", e.Field(), e.Param(), e.Value())
	default:
		return fmt.Errorf("config: %s failed %s validation", e.Field(), e.Tag())
	}
}

func (c *Config) SyncMode() backend.SyncMode {
	if c.Sync == "never" {
		return backend.SyncNever
	}
	return backend.SyncAlways
}
