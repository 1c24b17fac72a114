package main

import (
	"log/slog"
	"strings"
	"sync"

	"boardshelf/backend/internal/config"
	"boardshelf/backend/internal/database"
	"boardshelf/backend/internal/logging"
	"boardshelf/backend/internal/store"

	"gorm.io/gorm"
)

// commandContext lazily builds the dependencies shared by the commands.
type commandContext struct {
	envDir *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error
}

func newCommandContext(envDir *string) *commandContext {
	return &commandContext{envDir: envDir}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		dir := "."
		if c.envDir != nil && strings.TrimSpace(*c.envDir) != "" {
			dir = strings.TrimSpace(*c.envDir)
		}
		c.config, c.configErr = config.Load(dir)
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
}

// database opens, migrates and seeds the configured database once.
func (c *commandContext) database(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	c.dbOnce.Do(func() {
		c.db, c.dbErr = database.Setup(cfg, logger)
	})
	return c.db, c.dbErr
}

// store is the shortcut used by the offline commands: they log warnings
// only.
func (c *commandContext) store() (*store.Store, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(logging.Options{Level: "warn", Format: cfg.LogFormat})
	if err != nil {
		return nil, nil, err
	}
	db, err := c.database(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return store.New(db), cfg, nil
}
