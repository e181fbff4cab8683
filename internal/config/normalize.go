package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize(opts loadOptions) error {
	c.normalizeDaemon(opts.host)
	return c.normalizeLogging()
}

func (c *Config) normalizeDaemon(override string) {
	if override != "" {
		c.Daemon.Host = override
	} else if value, ok := os.LookupEnv(HostEnv); ok && strings.TrimSpace(value) != "" {
		c.Daemon.Host = value
	}
	c.Daemon.Host = strings.TrimSpace(c.Daemon.Host)
	if c.Daemon.Host == "" {
		c.Daemon.Host = DefaultHost()
	}
	c.Daemon.HostName = strings.TrimSpace(c.Daemon.HostName)
	if c.Daemon.HostName == "" {
		c.Daemon.HostName = defaultHostName
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		var err error
		if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
