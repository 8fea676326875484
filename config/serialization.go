package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcuadros/go-defaults"
	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// File is the location of the configuration file.
func File() string {
	configFolder := os.Getenv("XDG_CONFIG_HOME")
	if configFolder == "" {
		homeFolder := os.Getenv("HOME")
		if homeFolder == "" {
			homeFolder, _ = homedir.Dir()
		}
		if homeFolder != "" {
			configFolder = filepath.Join(homeFolder, ".config")
		}
	}
	return filepath.Join(configFolder, "gripctl.yml")
}

// Load reads the configuration file, if any, applies defaults and
// environment overrides, and validates the result. A missing file is not an
// error.
func Load() (*Config, error) {
	return LoadFile(File())
}

// LoadFile is Load for an explicit file path.
func LoadFile(path string) (*Config, error) {
	c := &Config{}
	// if the file can't be read there is simply no configuration file
	if data, err := os.ReadFile(path); err == nil {
		if err = yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf(
				"read config file %s, but failed to parse YAML, error: %s",
				path, err,
			)
		}
	}
	defaults.SetDefaults(c)
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes c to the configuration file.
func Save(c *Config) error {
	return SaveFile(File(), c)
}

// SaveFile is Save for an explicit file path. Values equal to their defaults
// are left out.
func SaveFile(path string, c *Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	out := *c
	def := New()
	if out.Timeout == def.Timeout {
		out.Timeout = 0
	}
	if out.MaxElapsedTime == def.MaxElapsedTime {
		out.MaxElapsedTime = 0
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to serialize config, error: %s", err)
	}
	// Attempt to create config folder if it doesn't exist... (ignore errors)
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	if err = os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %s, error: %s", path, err)
	}
	return nil
}
