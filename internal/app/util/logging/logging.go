package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the zap logger shared by the CLI commands and the HTTP
// server. Verbose mode uses the development config with colored console
// levels; otherwise logs are production JSON without stacktraces.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		config := zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return config.Build()
	}

	config := zap.NewProductionConfig()
	config.DisableStacktrace = true
	return config.Build()
}
