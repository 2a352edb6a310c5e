package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"atlas/internal/blob"
	"atlas/internal/catalog"
	"atlas/internal/config"
	"atlas/internal/logging"
	"atlas/internal/notifications"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
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

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil || cfg == nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withStore opens the catalogue store, runs fn, and closes the store again.
func (c *commandContext) withStore(fn func(*catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalogue: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func (c *commandContext) blobStore() (blob.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return blob.NewStore(cfg)
}

func (c *commandContext) notifier() notifications.Service {
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil {
		return nil
	}
	return notifications.NewService(cfg)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
