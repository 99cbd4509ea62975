// Package log provides the package-level logger used across riftdoc,
// wrapping go.uber.org/zap the way the rest of the stack expects a single
// shared *zap.SugaredLogger.
package log

import (
	"go.uber.org/zap"
)

// Logger is the globally shared sugared logger.
var Logger *zap.SugaredLogger

func init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	Logger = logger.Sugar()
}

// SetLogger replaces the global logger, e.g. with a development or test
// logger that writes to stderr with human-readable output.
func SetLogger(logger *zap.SugaredLogger) {
	Logger = logger
}
