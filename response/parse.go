// response/parse.go
package response

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseContentTypeHeader parses the Content-Type header and returns the lowercased MIME
// type and any parameters.
func ParseContentTypeHeader(header string) (string, map[string]string) {
	mimeType, params := parseHeader(header)
	return strings.ToLower(mimeType), params
}

// parseHeader splits a header such as Content-Type into its main value and its
// key=value parameters.
func parseHeader(header string) (string, map[string]string) {
	parts := strings.SplitN(header, ";", 2)
	mainValue := strings.TrimSpace(parts[0])

	params := make(map[string]string)
	if len(parts) > 1 {
		for _, part := range strings.Split(parts[1], ";") {
			kv := strings.SplitN(part, "=", 2)
			if len(kv) == 2 {
				params[strings.ToLower(strings.TrimSpace(kv[0]))] = strings.Trim(strings.TrimSpace(kv[1]), "\"")
			}
		}
	}

	return mainValue, params
}

// ParseRetryAfter reads a Retry-After header given either as delay seconds or as an
// HTTP date relative to now. Negative waits clamp to zero.
func ParseRetryAfter(header http.Header, now time.Time) (time.Duration, bool) {
	value := strings.TrimSpace(header.Get("Retry-After"))
	if value == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			secs = 0
		}
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(value); err == nil {
		wait := t.Sub(now)
		if wait < 0 {
			wait = 0
		}
		return wait, true
	}
	return 0, false
}
