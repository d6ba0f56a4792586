package main

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/gcbaptista/go-ats-scanner/config"
	"github.com/gcbaptista/go-ats-scanner/internal/logger"
)

type commandContext struct {
	configFlag  *string
	debugFlag   *bool
	jsonLogFlag *bool

	configOnce sync.Once
	config     config.Settings
	configErr  error

	loggerOnce sync.Once
	logger     *zap.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, debugFlag, jsonLogFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		debugFlag:   debugFlag,
		jsonLogFlag: jsonLogFlag,
	}
}

// ensureConfig loads settings once. --debug and --json-log override the log section.
func (c *commandContext) ensureConfig() (config.Settings, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		settings, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.debugFlag != nil && *c.debugFlag {
			settings.Log.Debug = true
		}
		if c.jsonLogFlag != nil && *c.jsonLogFlag {
			settings.Log.JSON = true
		}
		c.config = settings
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*zap.Logger, error) {
	c.loggerOnce.Do(func() {
		settings, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		log, err := logger.New(settings.Log.JSON, settings.Log.Debug)
		if err != nil {
			c.loggerErr = fmt.Errorf("creating a logger: %w", err)
			return
		}
		c.logger = log
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) sync() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}
