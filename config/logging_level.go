package config

import (
	"go.viam.com/mof/logging"
)

// InitLoggingSettings sets the global log level from the config, with the command line debug flag
// taking precedence, and applies it to logger.
func InitLoggingSettings(logger logging.Logger, cfg *Config, cmdLineDebugFlag bool) {
	level := logging.INFO
	if cfg != nil {
		level = cfg.LogLevel
	}
	if cmdLineDebugFlag {
		level = logging.DEBUG
	}
	logging.GlobalLogLevel.SetLevel(level.AsZap())
	logger.SetLevel(level)
	logger.Debugw("log level initialized", "level", level)
}
