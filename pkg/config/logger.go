package config

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// LoggingConfig configures the console logger.
type LoggingConfig struct {
	// Level is one of none, normal or debug
	Level string `yaml:"level"`
}

// Prepare returns the program logger: info and warnings go to stdout, errors to stderr. Levels
// are colored when the stream is a terminal.
func (conf LoggingConfig) Prepare() (*zap.Logger, error) {
	return conf.build(os.Stdout, os.Stderr)
}

func (conf LoggingConfig) build(stdout, stderr *os.File) (*zap.Logger, error) {
	var lowest zapcore.Level
	switch conf.Level {
	case LevelNone:
		return zap.NewNop(), nil
	case LevelNormal, "":
		lowest = zapcore.InfoLevel
	case LevelDebug:
		lowest = zapcore.DebugLevel
	default:
		return nil, errors.Errorf("invalid logging level %q", conf.Level)
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lowest <= lvl && lvl < zapcore.ErrorLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder(stdout), zapcore.Lock(stdout), lowPriority),
		zapcore.NewCore(consoleEncoder(stderr), zapcore.Lock(stderr), highPriority),
	)

	return zap.New(core).Named("lesskeeper"), nil
}

func consoleEncoder(stream *os.File) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return zapcore.NewConsoleEncoder(ec)
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}

func validLevel(level string) bool {
	switch level {
	case LevelNone, LevelNormal, LevelDebug:
		return true
	}

	return false
}
