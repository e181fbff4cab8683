package config

import (
	"errors"
	"fmt"
	"strings"

	"wharf/internal/transport"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDaemon(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDaemon() error {
	if _, err := transport.ParseEndpoint(c.Daemon.Host); err != nil {
		return fmt.Errorf("daemon.host: %w", err)
	}
	if strings.ContainsAny(c.Daemon.HostName, " \r\n") {
		return errors.New("daemon.host_name must not contain whitespace")
	}
	if c.Daemon.TimeoutSeconds < 0 {
		return errors.New("daemon.timeout_seconds must be zero or positive")
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

// Endpoint parses the configured daemon address.
func (c *Config) Endpoint() (transport.Endpoint, error) {
	ep, err := transport.ParseEndpoint(c.Daemon.Host)
	if err != nil {
		return transport.Endpoint{}, fmt.Errorf("daemon.host: %w", err)
	}
	return ep, nil
}
