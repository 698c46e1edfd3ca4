package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlex()
	c.normalizeCollection()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	// An explicitly empty log_dir means stdout-only logging, so unlike the
	// state dir it is not refilled with the default.
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePlex() {
	c.Plex.Host = strings.TrimRight(strings.TrimSpace(c.Plex.Host), "/")
	if c.Plex.Host == "" {
		c.Plex.Host = defaultHost
	}
	c.Plex.Token = strings.TrimSpace(c.Plex.Token)
	c.Plex.Section = strings.TrimSpace(c.Plex.Section)
}

func (c *Config) normalizeCollection() {
	c.Collection.Name = strings.TrimSpace(c.Collection.Name)
	if c.Collection.Name == "" {
		c.Collection.Name = defaultCollectionName
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
