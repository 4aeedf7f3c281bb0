package pkg

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logLevels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// LogLevel maps a level name to a zap level, defaulting to info.
func LogLevel(name string) zapcore.Level {
	if lvl, ok := logLevels[name]; ok {
		return lvl
	}
	return zapcore.InfoLevel
}

// InitLog opens dest for appending and returns a logger named name writing to
// it. The terminal belongs to the UI, so logs never go to stdout.
func InitLog(dest, name, level string) (*zap.Logger, func(), error) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(f), LogLevel(level))
	logger := zap.New(core, zap.AddCaller()).Named(name)
	closer := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, closer, nil
}
