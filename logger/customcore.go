package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RedactedValue replaces the value of any sensitive field.
const RedactedValue = "REDACTED"

// sensitiveFieldKeys are compared case-insensitively.
var sensitiveFieldKeys = map[string]bool{
	"authorization": true,
	"api_key":       true,
	"apikey":        true,
	"password":      true,
	"secret":        true,
	"session_key":   true,
}

// IsSensitiveKey reports whether a field or header name carries secret material.
func IsSensitiveKey(key string) bool {
	return sensitiveFieldKeys[strings.ToLower(key)]
}

// redactingCore wraps a zapcore.Core and masks sensitive fields before they are encoded.
type redactingCore struct {
	zapcore.Core
}

// With adds structured context to the Core, redacting it first.
func (c *redactingCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactingCore{c.Core.With(redactFields(fields))}
}

// Write serializes the Entry and any Fields supplied at the log site.
func (c *redactingCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(entry, redactFields(fields))
}

// Check determines whether the supplied Entry should be logged.
// The entry is registered against this core so Write goes through redaction.
func (c *redactingCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checkedEntry.AddCore(entry, c)
	}
	return checkedEntry
}

// Sync flushes buffered logs (if any).
func (c *redactingCore) Sync() error {
	return c.Core.Sync()
}

func redactFields(fields []zapcore.Field) []zapcore.Field {
	var out []zapcore.Field
	for i, field := range fields {
		if !IsSensitiveKey(field.Key) {
			continue
		}
		if out == nil {
			out = make([]zapcore.Field, len(fields))
			copy(out, fields)
		}
		out[i] = zap.String(field.Key, RedactedValue)
	}
	if out == nil {
		return fields
	}
	return out
}
