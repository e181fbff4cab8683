package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"wharf/internal/config"
	"wharf/internal/docker"
	"wharf/internal/logging"
	"wharf/internal/transport"
)

type commandContext struct {
	hostFlag   *string
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	log        *slog.Logger
	logErr     error
}

func newCommandContext(hostFlag, configFlag *string) *commandContext {
	return &commandContext{
		hostFlag:   hostFlag,
		configFlag: configFlag,
	}
}

// ensureConfig loads the configuration once. --host wins over DOCKER_HOST,
// which wins over daemon.host.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		host := c.hostOverride()
		if host != "" {
			if _, err := transport.ParseEndpoint(host); err != nil {
				c.configErr = fmt.Errorf("--host: %w", err)
				return
			}
		}
		cfg, resolved, exists, err := config.Load(path, config.WithHost(host))
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) hostOverride() string {
	if c.hostFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.hostFlag)
}

func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		c.log, c.logErr = logging.NewFromConfig(cfg, cmd.ErrOrStderr())
		if c.logErr != nil {
			c.logErr = fmt.Errorf("init logging: %w", c.logErr)
		}
	})
	return c.log, c.logErr
}

func (c *commandContext) client(cmd *cobra.Command) (*docker.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return nil, err
	}
	return docker.NewFromConfig(cfg, logger)
}

// wrapDialError adds an operator hint to connection failures. The dial
// error stays in the chain.
func wrapDialError(err error) error {
	var connErr *transport.ConnectionError
	if !errors.As(err, &connErr) {
		return err
	}
	switch connErr.Reason {
	case transport.ReasonNotFound:
		return fmt.Errorf("%w\nhint: is the daemon running? point wharf at it with --host or %s", err, config.HostEnv)
	case transport.ReasonPermissionDenied:
		return fmt.Errorf("%w\nhint: your user needs access to %s", err, connErr.Endpoint.Address)
	case transport.ReasonRefused:
		return fmt.Errorf("%w\nhint: the socket exists but nothing is listening; restart the daemon", err)
	case transport.ReasonUnsupported:
		return fmt.Errorf("%w\nhint: use a unix:// or tcp:// address on this platform", err)
	default:
		return err
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
