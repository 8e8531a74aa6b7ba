package config

import (
	"fmt"

	"github.com/kbukum/meetscribe/logger"
	"github.com/kbukum/meetscribe/server"
	"github.com/kbukum/meetscribe/speech"
	"github.com/kbukum/meetscribe/staging"
	"github.com/kbukum/meetscribe/storage"
)

// ServiceName is the name config and env files are resolved under.
const ServiceName = "meetscribe"

// Config is the full service configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	Logging logger.Config  `yaml:"logging" mapstructure:"logging"`
	Server  server.Config  `yaml:"server" mapstructure:"server"`
	Speech  speech.Config  `yaml:"speech" mapstructure:"speech"`
	Storage storage.Config `yaml:"storage" mapstructure:"storage"`
	Staging staging.Config `yaml:"staging" mapstructure:"staging"`
}

// Load reads the service configuration and applies defaults. Validation is
// separate so callers control when to fail.
func Load(opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadInto(ServiceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills in zero-valued fields section by section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	if c.Debug && c.Logging.Level == "info" {
		c.Logging.Level = "debug"
	}
	c.Server.ApplyDefaults()
	c.Speech.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Staging.ApplyDefaults()
}

// Validate checks every section and fails fast on the first problem.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Speech.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return nil
}
