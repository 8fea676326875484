package config

import (
	"fmt"
	"os"
	"time"

	"github.com/fanout/go-gripcontrol"
	"github.com/mcuadros/go-defaults"
)

// Config holds gripctl settings.
type Config struct {
	// Proxies are the GRIP URIs to publish to.
	Proxies []string `yaml:"proxies,omitempty"`
	// Timeout bounds a whole publish, retries included.
	Timeout time.Duration `yaml:"timeout,omitempty" default:"30s"`
	// MaxElapsedTime bounds the retries of a single proxy.
	MaxElapsedTime time.Duration `yaml:"maxElapsedTime,omitempty" default:"2m"`
}

// New returns a Config holding only default values.
func New() *Config {
	c := &Config{}
	defaults.SetDefaults(c)
	return c
}

// applyEnv overrides file values with GRIP_URL and GRIP_TIMEOUT.
func (c *Config) applyEnv() error {
	if uri := os.Getenv("GRIP_URL"); uri != "" {
		c.Proxies = append(c.Proxies, uri)
	}
	if timeout := os.Getenv("GRIP_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("failed to parse environment variable 'GRIP_TIMEOUT', error: %s", err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks durations are positive and every proxy is a valid GRIP URI.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid value '%s' for config option 'timeout': must be positive", c.Timeout)
	}
	if c.MaxElapsedTime <= 0 {
		return fmt.Errorf("invalid value '%s' for config option 'maxElapsedTime': must be positive", c.MaxElapsedTime)
	}
	for _, proxy := range c.Proxies {
		if _, err := gripcontrol.ParseGripURI(proxy); err != nil {
			return fmt.Errorf("invalid value '%s' for config option 'proxies', error: %s", proxy, err)
		}
	}
	return nil
}

// GripConfigs parses every configured proxy.
func (c *Config) GripConfigs() ([]*gripcontrol.GripConfig, error) {
	configs := make([]*gripcontrol.GripConfig, 0, len(c.Proxies))
	for _, proxy := range c.Proxies {
		config, err := gripcontrol.ParseGripURI(proxy)
		if err != nil {
			return nil, err
		}
		configs = append(configs, config)
	}
	return configs, nil
}
