// backend/utils/logger.go
package utils

import (
	"log"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. Use GetLogger so it is always initialized.
var Logger *zap.Logger

// InitializeLogger builds the global logger. style is "production" (JSON) or anything else
// for the colored development console; level is a zap level name such as "debug" or "info".
func InitializeLogger(style, level string) {
	var cfg zap.Config

	if strings.EqualFold(style, "production") {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			log.Printf("Unknown log level %q, keeping %s: %v", level, cfg.Level.String(), err)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(parsed)
		}
	}

	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(Logger)
}

// GetLogger retrieves the global logger, falling back to a development logger.
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger("development", "")
	}
	return Logger
}
