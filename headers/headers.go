// headers/headers.go
package headers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/deploymenttheory/go-api-sdk-cscart/headers/redact"
	"github.com/deploymenttheory/go-api-sdk-cscart/logger"
	"go.uber.org/zap"
)

// HeaderHandler assembles the headers of one outgoing request. Defaults are set first;
// caller-supplied overrides replace defaults of the same name.
type HeaderHandler struct {
	header http.Header
	log    logger.Logger
}

// NewHeaderHandler creates a HeaderHandler over an empty header set.
func NewHeaderHandler(log logger.Logger) *HeaderHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &HeaderHandler{header: http.Header{}, log: log}
}

// SetAuthorization sets the Authorization header to a complete value such as
// "Basic <token>".
func (h *HeaderHandler) SetAuthorization(value string) {
	h.header.Set("Authorization", value)
}

// SetContentType sets the Content-Type header for the request.
func (h *HeaderHandler) SetContentType(contentType string) {
	if contentType != "" {
		h.header.Set("Content-Type", contentType)
	}
}

// SetAccept sets the Accept header for the request.
func (h *HeaderHandler) SetAccept(acceptHeader string) {
	h.header.Set("Accept", acceptHeader)
}

// SetUserAgent sets the User-Agent header for the request.
func (h *HeaderHandler) SetUserAgent(userAgent string) {
	h.header.Set("User-Agent", userAgent)
}

// ApplyOverrides replaces any header already set with the values in overrides.
func (h *HeaderHandler) ApplyOverrides(overrides http.Header) {
	for name, values := range overrides {
		h.header.Del(name)
		for _, v := range values {
			h.header.Add(name, v)
		}
	}
}

// Header returns the assembled headers.
func (h *HeaderHandler) Header() http.Header {
	return h.header
}

// LogHeaders logs the assembled headers at debug level, redacting sensitive values
// when hideSensitiveData is set.
func (h *HeaderHandler) LogHeaders(requestID string, hideSensitiveData bool) {
	if h.log.GetLogLevel() > logger.LogLevelDebug {
		return
	}
	h.log.Debug("HTTP Request Headers",
		zap.String("request_id", requestID),
		zap.String("headers", HeadersToString(redact.RedactHeaders(hideSensitiveData, h.header))),
	)
}

// HeadersToString renders headers one per line, sorted by name.
func HeadersToString(headers http.Header) string {
	lines := make([]string, 0, len(headers))
	for name, values := range headers {
		lines = append(lines, fmt.Sprintf("%s: %s", name, strings.Join(values, ", ")))
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// CheckDeprecationHeader logs a warning when the response marks the endpoint deprecated.
func CheckDeprecationHeader(header http.Header, url string, log logger.Logger) {
	if deprecation := header.Get("Deprecation"); deprecation != "" {
		log.Warn("API endpoint is deprecated",
			zap.String("date", deprecation),
			zap.String("url", url),
		)
	}
}
