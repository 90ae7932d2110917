package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init configures the process-wide logger. Format is "json" or "console",
// level is any zap level string; both fall back to sane defaults.
func Init(level, format string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	var encoder zapcore.Encoder
	switch format {
	case "console":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	default:
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lvl)
	log = zap.New(core)
}

func toZapFields(fields map[string]any) []zap.Field {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return zf
}

func Info(msg string, fields map[string]any) {
	log.Info(msg, toZapFields(fields)...)
}

func Warn(msg string, fields map[string]any) {
	log.Warn(msg, toZapFields(fields)...)
}

func Error(msg string, fields map[string]any) {
	log.Error(msg, toZapFields(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	log.Fatal(msg, toZapFields(fields)...)
}
