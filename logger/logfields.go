// logfields.go
package logger

import (
	"time"

	"go.uber.org/zap"
)

// LogRequestStart logs the initiation of an HTTP request, including the HTTP method, URL, and headers.
// Headers are expected to be redacted by the caller.
func (d *defaultLogger) LogRequestStart(requestID string, method string, url string, headers map[string][]string) {
	if d.logLevel > LogLevelDebug {
		return
	}
	d.logger.Debug("HTTP request started",
		zap.String("event", "request_start"),
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", url),
		zap.Reflect("headers", headers),
	)
}

// LogRequestEnd logs the completion of an HTTP request, including the HTTP method, URL, status code, and duration.
func (d *defaultLogger) LogRequestEnd(requestID string, method string, url string, statusCode int, duration time.Duration) {
	if d.logLevel > LogLevelInfo {
		return
	}
	d.logger.Info("HTTP request completed",
		zap.String("event", "request_end"),
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status_code", statusCode),
		zap.Duration("duration", duration),
	)
}

// LogError logs an error that occurs during the processing of an HTTP request.
func (d *defaultLogger) LogError(event string, method string, url string, statusCode int, err error) {
	if d.logLevel > LogLevelError {
		return
	}
	fields := []zap.Field{
		zap.String("event", event),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status_code", statusCode),
	}
	if err != nil {
		fields = append(fields, zap.String("error_message", err.Error()))
	}
	d.logger.Error("Error during HTTP request", fields...)
}
