package config

import "runtime"

const (
	defaultConfigPath     = "~/.config/wharf/config.toml"
	defaultUnixHost       = "unix:///var/run/docker.sock"
	defaultWindowsHost    = "npipe:////./pipe/docker_engine"
	defaultHostName       = "localhost"
	defaultTimeoutSeconds = 0
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"

	// HostEnv names the environment variable that overrides daemon.host.
	HostEnv = "DOCKER_HOST"
)

// DefaultHost returns the platform default daemon address.
func DefaultHost() string {
	if runtime.GOOS == "windows" {
		return defaultWindowsHost
	}
	return defaultUnixHost
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Daemon: Daemon{
			Host:           DefaultHost(),
			HostName:       defaultHostName,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
