package speech

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/kbukum/meetscribe/errors"
)

const (
	// apiPath is the versioned path of the batch transcription API.
	apiPath = "/speechtotext/v3.2"

	// minResultTTLHours is the provider-imposed floor on result retention.
	// Configured values below it are silently raised.
	minResultTTLHours = 6

	defaultResultTTLHours = 24
	defaultTimeout        = 60 * time.Second
)

// Config holds configuration for the speech-batch client.
type Config struct {
	// Key is the service subscription key. Required.
	Key string `yaml:"key" mapstructure:"key"`

	// Region is the service region (e.g. "eastus"). Required unless
	// Endpoint is set.
	Region string `yaml:"region" mapstructure:"region"`

	// Endpoint overrides the regional endpoint with a full base URL.
	// Used for sovereign clouds and tests.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Timeout bounds each HTTP call. Defaults to 60s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// ResultTTLHours is how long the service retains job results.
	// Values below the provider floor of 6 hours are raised to it.
	ResultTTLHours int `yaml:"result_ttl_hours" mapstructure:"result_ttl_hours"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.ResultTTLHours <= 0 {
		c.ResultTTLHours = defaultResultTTLHours
	}
}

// Validate checks that required settings are present. It runs before any
// network call; a missing credential is a configuration error.
func (c *Config) Validate() error {
	if c.Key == "" {
		return apperrors.Configuration("speech.key", "value is required")
	}
	if c.Region == "" && c.Endpoint == "" {
		return apperrors.Configuration("speech.region", "value is required when no endpoint override is set")
	}
	return nil
}

// baseURL returns the API base URL for the configured region or endpoint.
func (c *Config) baseURL() string {
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/")
	}
	return fmt.Sprintf("https://%s.api.cognitive.microsoft.com%s", c.Region, apiPath)
}

// resultTTLHours returns the retention TTL with the provider floor applied.
func (c *Config) resultTTLHours() int {
	if c.ResultTTLHours < minResultTTLHours {
		return minResultTTLHours
	}
	return c.ResultTTLHours
}
