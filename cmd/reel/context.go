package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"reel/internal/config"
	"reel/internal/history"
	"reel/internal/logging"
	"reel/internal/notifications"
	"reel/internal/processor"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newProcessor wires a processor from config. The cleanup func closes the
// history store and must run after the command finishes.
func (c *commandContext) newProcessor() (*processor.Processor, *slog.Logger, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	notifier := notifications.NewService(cfg)
	var opts []processor.Option
	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg)
		if err != nil {
			// History is advisory; run without it rather than refusing.
			logger.Warn("history unavailable", "error", err)
		} else {
			opts = append(opts, processor.WithHistory(store))
		}
	}

	cleanup := func() {
		if store != nil {
			_ = store.Close()
		}
	}
	return processor.New(cfg, logger, notifier, opts...), logger, cleanup, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
