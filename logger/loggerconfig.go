// loggerconfig.go
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogOutputJSON    = "json"
	LogOutputConsole = "console"
)

// BuildLogger creates and returns a new zap backed Logger writing to stderr, so that
// stdout stays reserved for command output. Encoding is "json" or "console"; any other value
// falls back to JSON. The function panics if the logger cannot be initialized.
func BuildLogger(logLevel LogLevel, encoding string, logConsoleSeparator string) Logger {
	encoderCfg := zap.NewProductionEncoderConfig()

	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderCfg.MessageKey = "msg"
	encoderCfg.LevelKey = "level"
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder

	if encoding != LogOutputConsole {
		encoding = LogOutputJSON
	}
	if encoding == LogOutputConsole {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if logConsoleSeparator != "" {
			encoderCfg.ConsoleSeparator = logConsoleSeparator
		}
	}

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(convertToZapLevel(logLevel)),
		Development:       false,
		Encoding:          encoding,
		DisableCaller:     true,
		DisableStacktrace: true,
		Sampling:          nil,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}

	base := zap.Must(config.Build())

	// Wrap the original core so credentials never reach an encoder.
	wrapped := zap.New(&redactingCore{Core: base.Core()})

	return &defaultLogger{
		logger:   wrapped,
		logLevel: logLevel,
	}
}

// convertToZapLevel converts the custom LogLevel to a zapcore.Level
func convertToZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LogLevelDebug:
		return zap.DebugLevel
	case LogLevelInfo:
		return zap.InfoLevel
	case LogLevelWarn:
		return zap.WarnLevel
	case LogLevelError:
		return zap.ErrorLevel
	case LogLevelDPanic:
		return zap.DPanicLevel
	case LogLevelPanic:
		return zap.PanicLevel
	case LogLevelFatal, LogLevelNone:
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}
