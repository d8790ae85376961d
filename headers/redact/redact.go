// headers/redact/redact.go
package redact

import "net/http"

// RedactedValue replaces the value of every sensitive header.
const RedactedValue = "REDACTED"

// sensitiveKeys holds canonical header names whose values must never be logged.
var sensitiveKeys = map[string]bool{
	"Authorization":       true,
	"Proxy-Authorization": true,
	"Cookie":              true,
	"Set-Cookie":          true,
	"X-Api-Key":           true,
}

// IsSensitiveHeader reports whether key names a credential-bearing header. The match
// ignores case.
func IsSensitiveHeader(key string) bool {
	return sensitiveKeys[http.CanonicalHeaderKey(key)]
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData && IsSensitiveHeader(key) {
		return RedactedValue
	}
	return value
}

// RedactHeaders returns a copy of h with every sensitive value replaced.
func RedactHeaders(hideSensitiveData bool, h http.Header) http.Header {
	out := make(http.Header, len(h))
	for name, values := range h {
		redacted := make([]string, len(values))
		for i, v := range values {
			redacted[i] = RedactSensitiveHeaderData(hideSensitiveData, name, v)
		}
		out[name] = redacted
	}
	return out
}
