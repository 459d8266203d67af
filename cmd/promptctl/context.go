package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/phrazzld/promptchain/internal/bootstrap"
	"github.com/phrazzld/promptchain/internal/config"
	"github.com/phrazzld/promptchain/internal/platform/logger"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	components *bootstrap.Components
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		if path != "" {
			c.config, c.configErr = config.LoadFile(path)
		} else {
			c.config, c.configErr = config.Load()
		}
		if c.configErr != nil {
			c.configErr = fmt.Errorf("load configuration: %w", c.configErr)
		}
	})
	return c.config, c.configErr
}

// ensureComponents builds the services on first use. Logs go to stderr at
// warn level unless --verbose is set.
func (c *commandContext) ensureComponents(ctx context.Context, stderr io.Writer) (*bootstrap.Components, error) {
	if c.components != nil {
		return c.components, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Server
	if c.verboseFlag == nil || !*c.verboseFlag {
		logCfg.LogLevel = "warn"
	}
	log, err := logger.SetupWithWriter(logCfg, stderr)
	if err != nil {
		return nil, err
	}

	components, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	c.components = components
	return components, nil
}

// withComponents runs fn with the built components and releases them after.
func (c *commandContext) withComponents(cmd *cobra.Command, fn func(*bootstrap.Components) error) error {
	components, err := c.ensureComponents(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer c.close()
	return fn(components)
}

func (c *commandContext) close() {
	if c.components != nil {
		c.components.Close()
		c.components = nil
	}
}
