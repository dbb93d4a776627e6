// Package logging builds the zap logger shared by the CLI, the terminal UI
// and the HTTP shell.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"weekplan/internal/config"
	"weekplan/internal/fsutil"
)

// LogFile is the file the terminal UI logs to inside the data directory.
const LogFile = "weekplan.log"

// ParseLevel maps a config level to a zap level. Unknown levels are info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New builds a JSON logger writing to outputPaths ("stdout", "stderr" or
// file paths). With no paths it writes to stderr.
func New(cfg config.LoggingConfig, outputPaths ...string) (*zap.Logger, error) {
	if len(outputPaths) == 0 {
		outputPaths = []string{"stderr"}
	}
	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(cfg.Level)),
		Encoding:         "json",
		EncoderConfig:    encoderConfig(),
		OutputPaths:      outputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}
	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// NewFile builds a logger that appends to <dataDir>/weekplan.log, for
// commands that own the terminal.
func NewFile(cfg config.LoggingConfig, dataDir string) (*zap.Logger, error) {
	if err := os.MkdirAll(dataDir, fsutil.DirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return New(cfg, filepath.Join(dataDir, LogFile))
}
