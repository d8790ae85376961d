// status.go
// Package status classifies HTTP status codes.
package status

import (
	"fmt"
	"net/http"
)

// IsSuccess reports whether statusCode is in the 2xx range. Every 2xx code counts,
// not only 200.
func IsSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode <= 299
}

// IsRedirectStatusCode checks if the provided HTTP status code is one of the redirect codes.
// Redirect status codes instruct the client to make a new request to a different URI, as defined in the response's Location header.
//
// - 301 Moved Permanently and 308 Permanent Redirect: future requests should use the new URI.
// - 302 Found and 307 Temporary Redirect: the resource temporarily lives elsewhere.
// - 303 See Other: the result should be fetched with GET from the given URI.
func IsRedirectStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// IsPermanentRedirect checks if the provided HTTP status code is one of the permanent redirect codes.
func IsPermanentRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// IsTransientError reports server-side failures that usually clear on their own.
func IsTransientError(statusCode int) bool {
	switch statusCode {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// IsRetryableStatusCode checks if the provided HTTP status code is considered retryable.
// Nothing in this module retries; the classification is for callers that choose to.
func IsRetryableStatusCode(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		IsTransientError(statusCode)
}

// TranslateStatusCode returns a readable description of statusCode, including the
// meaning CS-Cart's REST API gives the codes it documents.
func TranslateStatusCode(statusCode int) string {
	messages := map[int]string{
		http.StatusOK:                  "Request successful.",
		http.StatusCreated:             "Resource created.",
		http.StatusNoContent:           "Request successful, no content returned.",
		http.StatusBadRequest:          "Bad request: the request was malformed or missing required fields.",
		http.StatusUnauthorized:        "Unauthorized: the email or API key was rejected.",
		http.StatusForbidden:           "Forbidden: the account lacks permission for this resource.",
		http.StatusNotFound:            "Not found: the resource or object does not exist.",
		http.StatusMethodNotAllowed:    "Method not allowed for this resource.",
		http.StatusNotAcceptable:       "Not acceptable: the requested format is not supported.",
		http.StatusConflict:            "Conflict: the request conflicts with the current state of the resource.",
		http.StatusTooManyRequests:     "Too many requests: the rate limit was exceeded.",
		http.StatusInternalServerError: "Internal server error.",
		http.StatusBadGateway:          "Bad gateway.",
		http.StatusServiceUnavailable:  "Service unavailable.",
		http.StatusGatewayTimeout:      "Gateway timeout.",
	}

	if message, ok := messages[statusCode]; ok {
		return message
	}
	if text := http.StatusText(statusCode); text != "" {
		return text + "."
	}
	return fmt.Sprintf("Unknown status code %d.", statusCode)
}
