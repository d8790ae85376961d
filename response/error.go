// response/error.go
package response

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html"
)

// HTTPError is a response whose status fell outside [200, 299]. Body is the raw
// response body; Message is a best-effort summary for diagnostics only.
type HTTPError struct {
	StatusCode int           `json:"status_code"`
	Body       string        `json:"body"`
	Message    string        `json:"message,omitempty"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// Error returns a string representation of the HTTPError.
func (e *HTTPError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if msg == "" {
		return fmt.Sprintf("http error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status %d: %s", e.StatusCode, msg)
}

// TransportError means no HTTP response was received: DNS, connection, TLS,
// timeout or cancellation.
type TransportError struct {
	Method string `json:"method"`
	URL    string `json:"url"`
	Cause  error  `json:"-"`
}

// Error returns a string representation of the TransportError.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.URL, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the request failed because a deadline passed.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Cause, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Cause, &t) && t.Timeout()
}

// DecodeError is a 2xx response whose body was not valid JSON.
type DecodeError struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
	Cause      error  `json:"-"`
}

// Error returns a string representation of the DecodeError.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: status %d: %v", e.StatusCode, e.Cause)
}

// Unwrap returns the underlying JSON error.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

func newHTTPError(statusCode int, header http.Header, body []byte) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: statusCode,
		Body:       string(body),
		Message:    extractMessage(header.Get("Content-Type"), body),
	}
	if statusCode == http.StatusTooManyRequests || statusCode == http.StatusServiceUnavailable {
		if wait, ok := ParseRetryAfter(header, time.Now()); ok {
			httpErr.RetryAfter = wait
		}
	}
	return httpErr
}

// extractMessage picks a human-readable summary from an error body. The Content-Type
// header chooses the parser; without one, a body that looks like JSON is tried as JSON.
func extractMessage(contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	mimeType, _ := ParseContentTypeHeader(contentType)
	switch {
	case strings.HasSuffix(mimeType, "json"):
		return parseJSONMessage(trimmed)
	case mimeType == "application/xml", mimeType == "text/xml":
		return parseXMLMessage(trimmed)
	case mimeType == "text/html":
		return parseHTMLMessage(trimmed)
	case trimmed[0] == '{' || trimmed[0] == '[':
		return parseJSONMessage(trimmed)
	default:
		return string(trimmed)
	}
}

// parseJSONMessage reads the "message" or "error" member, which may itself be an
// object carrying "message".
func parseJSONMessage(body []byte) string {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error", "error_description"} {
		switch v := doc[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return ""
}

// parseXMLMessage joins every non-blank text node.
func parseXMLMessage(body []byte) string {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var messages []string
	var traverse func(*xmlquery.Node)
	traverse = func(n *xmlquery.Node) {
		if n.Type == xmlquery.TextNode && strings.TrimSpace(n.Data) != "" {
			messages = append(messages, strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	return strings.Join(messages, "; ")
}

// parseHTMLMessage concatenates the text of every <p> element, falling back to the
// document <title>.
func parseHTMLMessage(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var messages []string
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p":
				if text := nodeText(n); text != "" {
					messages = append(messages, text)
				}
				return
			case "title":
				title = nodeText(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(messages) > 0 {
		return strings.Join(messages, "; ")
	}
	return title
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(c *html.Node) {
		if c.Type == html.TextNode {
			if text := strings.TrimSpace(c.Data); text != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(text)
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(n)
	return b.String()
}
