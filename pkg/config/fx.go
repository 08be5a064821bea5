package config

import (
	"os"

	"github.com/pseudomuto/lesskeeper/pkg/compiler"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("config", fx.Provide(
	// Returns nil if the configuration file doesn't exist, allowing commands that don't require
	// config (like init, compile, help, version) to function properly.
	func() (*Config, error) {
		path := Path()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, nil
		}

		return LoadConfigFile(path)
	},
	func(c *Config) (*zap.Logger, error) {
		if c == nil {
			return LoggingConfig{Level: LevelNormal}.Prepare()
		}

		return c.Logging.Prepare()
	},
	func(log *zap.Logger) *compiler.Compiler {
		return compiler.New(compiler.WithLogger(log))
	},
))
