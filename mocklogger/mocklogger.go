// mocklogger/mocklogger.go
package mocklogger

import (
	"errors"
	"sync"
	"time"

	"github.com/deploymenttheory/go-api-sdk-cscart/logger"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockLogger is a testify mock for the logger.Logger interface. Expectations are only
// checked for calls the test registers with On; every other call is recorded and ignored
// when the logger is created with NewMockLogger.
type MockLogger struct {
	mock.Mock
	logLevel logger.LogLevel
	strict   bool
	mu       sync.Mutex
}

// NewMockLogger creates a permissive MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{logLevel: logger.LogLevelDebug}
}

// NewStrictMockLogger creates a MockLogger that fails on any unregistered call.
func NewStrictMockLogger() *MockLogger {
	return &MockLogger{logLevel: logger.LogLevelDebug, strict: true}
}

// Ensure MockLogger implements the logger.Logger interface from the logger package
var _ logger.Logger = (*MockLogger)(nil)

func (m *MockLogger) called(method string, args ...interface{}) mock.Arguments {
	if !m.strict && !m.registered(method) {
		m.mu.Lock()
		m.Mock.Calls = append(m.Mock.Calls, mock.Call{Method: method, Arguments: args})
		m.mu.Unlock()
		return nil
	}
	return m.MethodCalled(method, args...)
}

func (m *MockLogger) registered(method string) bool {
	for _, call := range m.ExpectedCalls {
		if call.Method == method {
			return true
		}
	}
	return false
}

// GetLogLevel returns the level set with SetLevel.
func (m *MockLogger) GetLogLevel() logger.LogLevel {
	return m.logLevel
}

// SetLevel sets the logging level of the MockLogger.
func (m *MockLogger) SetLevel(level logger.LogLevel) {
	m.logLevel = level
	m.called("SetLevel", level)
}

// With records the call and returns the same mock so expectations keep applying.
func (m *MockLogger) With(fields ...zap.Field) logger.Logger {
	m.called("With", fields)
	return m
}

// Sugar returns a no-op sugared logger.
func (m *MockLogger) Sugar() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Debug logs a message at the Debug level.
func (m *MockLogger) Debug(msg string, fields ...zap.Field) {
	m.called("Debug", msg, fields)
}

// Info logs a message at the Info level.
func (m *MockLogger) Info(msg string, fields ...zap.Field) {
	m.called("Info", msg, fields)
}

// Warn logs a message at the Warn level.
func (m *MockLogger) Warn(msg string, fields ...zap.Field) {
	m.called("Warn", msg, fields)
}

// Error logs a message at the Error level and returns an error.
func (m *MockLogger) Error(msg string, fields ...zap.Field) error {
	m.called("Error", msg, fields)
	return errors.New(msg)
}

// LogRequestStart logs the start of an HTTP request.
func (m *MockLogger) LogRequestStart(requestID string, method string, url string, headers map[string][]string) {
	m.called("LogRequestStart", requestID, method, url, headers)
}

// LogRequestEnd logs the end of an HTTP request.
func (m *MockLogger) LogRequestEnd(requestID string, method string, url string, statusCode int, duration time.Duration) {
	m.called("LogRequestEnd", requestID, method, url, statusCode, duration)
}

// LogError logs an error event.
func (m *MockLogger) LogError(event string, method string, url string, statusCode int, err error) {
	m.called("LogError", event, method, url, statusCode, err)
}

// CalledWith reports whether method was invoked at least once, registered or not.
func (m *MockLogger) CalledWith(method string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.Calls {
		if call.Method == method {
			return true
		}
	}
	return false
}
