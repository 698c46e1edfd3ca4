package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable. The Plex token is deliberately
// not required: it may arrive via a flag or an interactive prompt after load.
func (c *Config) Validate() error {
	if err := c.validatePlex(); err != nil {
		return err
	}
	if err := c.validateCollection(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePlex() error {
	parsed, err := url.Parse(c.Plex.Host)
	if err != nil {
		return fmt.Errorf("plex.host is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("plex.host must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("plex.host must include a host")
	}
	return nil
}

func (c *Config) validateCollection() error {
	if strings.TrimSpace(c.Collection.Name) == "" {
		return errors.New("collection.name must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
