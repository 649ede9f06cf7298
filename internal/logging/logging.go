// Package logging provides the structured logger used across rdb-retention.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/raoulx24/rdb-retention/internal/config"
)

// Logger takes a message followed by alternating keys and values.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// ZapLogger adapts a zap SugaredLogger to Logger.
type ZapLogger struct {
	s *zap.SugaredLogger
}

func (l ZapLogger) Debug(msg string, kv ...any) { l.s.Debugw(msg, kv...) }
func (l ZapLogger) Info(msg string, kv ...any)  { l.s.Infow(msg, kv...) }
func (l ZapLogger) Warn(msg string, kv ...any)  { l.s.Warnw(msg, kv...) }
func (l ZapLogger) Error(msg string, kv ...any) { l.s.Errorw(msg, kv...) }

// Sync flushes buffered entries.
func (l ZapLogger) Sync() error { return l.s.Sync() }

// New builds a logger writing to w with the configured level and encoding.
func New(cfg config.LoggingConfig, w io.Writer) (ZapLogger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return ZapLogger{}, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch cfg.Format {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "", "console":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return ZapLogger{}, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(level))
	return ZapLogger{s: zap.New(core).Sugar()}, nil
}

// Nop discards everything.
func Nop() ZapLogger {
	return ZapLogger{s: zap.NewNop().Sugar()}
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug", "trace":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}
