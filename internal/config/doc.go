// Package config loads, normalizes, and validates wharf configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the DOCKER_HOST environment
// variable the way the Docker CLI does. Always obtain the daemon address
// through this package so the CLI and tests resolve endpoints identically.
package config
