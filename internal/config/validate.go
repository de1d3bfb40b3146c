package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExtensions(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateExtensions() error {
	for _, label := range c.Extensions.Labels {
		for _, image := range c.Extensions.Images {
			if label == image {
				return fmt.Errorf("extension %q cannot be both a label and an image extension", label)
			}
		}
	}
	for _, ext := range append(append([]string{}, c.Extensions.Labels...), c.Extensions.Images...) {
		if strings.Count(ext, ".") != 1 {
			return fmt.Errorf("extension %q must have exactly one dot; only the last segment is compared", ext)
		}
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Keep < 0 {
		return errors.New("history.keep must be zero or positive")
	}
	if c.History.Enabled && strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
