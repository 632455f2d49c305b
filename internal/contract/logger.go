package contract

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a console logger on stderr at debug level when verbose
// is set, and a no-op logger otherwise.
func NewLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		LogWarn("Cannot build verbose logger", err)
		return zap.NewNop()
	}
	return logger
}
