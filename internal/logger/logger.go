package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger creates a zap logger for the given environment.
// prod uses JSON output, local/dev use colored console output.
// level (if non-empty) overrides the log level: debug, info, warn, error.
// file (if non-empty) tees output to a size-rotated log file.
func NewLogger(env, level, file string) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "prod":
		cfg = zap.NewProductionConfig()
	case "local", "dev", "docker":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	if level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	if file == "" {
		l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		return l, nil
	}

	// Tee console output with a rotated file. The file always gets JSON so
	// it stays machine-parseable regardless of env.
	consoleEnc := zapcore.NewConsoleEncoder(cfg.EncoderConfig)
	if env == "prod" {
		consoleEnc = zapcore.NewJSONEncoder(cfg.EncoderConfig)
	}
	fileEnc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	rotated := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    50, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stdout), cfg.Level),
		zapcore.NewCore(fileEnc, zapcore.AddSync(rotated), cfg.Level),
	)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
