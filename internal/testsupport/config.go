package testsupport

import (
	"testing"

	"wharf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a default config with DOCKER_HOST cleared so tests never
// reach a real daemon by accident.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()
	t.Setenv(config.HostEnv, "")

	cfg := config.Default()
	cfg.Logging.Level = "debug"
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithHost points the config at the given daemon address.
func WithHost(host string) ConfigOption {
	return func(c *config.Config) {
		c.Daemon.Host = host
	}
}

// WithTimeout sets the per-request idle timeout.
func WithTimeout(seconds int) ConfigOption {
	return func(c *config.Config) {
		c.Daemon.TimeoutSeconds = seconds
	}
}
