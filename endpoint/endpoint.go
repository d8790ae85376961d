// endpoint/endpoint.go
/* Package endpoint joins resource path segments onto a configured API base URL.
Joining always appends to the base path, never replaces it, and is insensitive to
leading or trailing slashes on either side. */
package endpoint

import (
	"fmt"
	"net/url"
	"strings"
)

// InvalidBaseURLError is returned when the base URL cannot anchor resource paths.
type InvalidBaseURLError struct {
	BaseURL string
	Reason  string
}

// Error returns a string representation of the InvalidBaseURLError.
func (e *InvalidBaseURLError) Error() string {
	return fmt.Sprintf("invalid base url %q: %s", e.BaseURL, e.Reason)
}

// Endpoint is an absolute URL that further segments can be joined onto.
// The zero value is not usable; create one with New.
type Endpoint struct {
	base     url.URL
	segments []string // escaped, non-empty
}

// New parses base, which must be an absolute http(s) URL.
func New(base string) (Endpoint, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return Endpoint{}, &InvalidBaseURLError{BaseURL: base, Reason: err.Error()}
	}
	if u.Scheme == "" || u.Host == "" {
		return Endpoint{}, &InvalidBaseURLError{BaseURL: base, Reason: "scheme and host are required"}
	}
	if u.Fragment != "" {
		return Endpoint{}, &InvalidBaseURLError{BaseURL: base, Reason: "fragments are not allowed"}
	}

	e := Endpoint{base: *u}
	e.base.Path, e.base.RawPath = "", ""
	e.segments = splitEscaped(u.EscapedPath())
	return e, nil
}

// MustNew is like New but panics on error.
func MustNew(base string) Endpoint {
	e, err := New(base)
	if err != nil {
		panic(err)
	}
	return e
}

// Resolve joins segments onto base and returns the resulting URL string.
func Resolve(base string, segments ...string) (string, error) {
	e, err := New(base)
	if err != nil {
		return "", err
	}
	return e.Join(segments...).String(), nil
}

// Join returns a new Endpoint with segments appended. Each segment may contain '/'
// separators; every part is escaped as a single path segment. The dot segments "."
// and ".." are percent-encoded so they name a literal segment instead of moving up
// the base path.
func (e Endpoint) Join(segments ...string) Endpoint {
	joined := make([]string, len(e.segments), len(e.segments)+len(segments))
	copy(joined, e.segments)
	for _, segment := range segments {
		for _, part := range strings.Split(segment, "/") {
			if part == "" {
				continue
			}
			joined = append(joined, escapeSegment(part))
		}
	}
	return Endpoint{base: e.base, segments: joined}
}

// URL returns a copy of the endpoint as a *url.URL.
func (e Endpoint) URL() *url.URL {
	u := e.base
	escaped := e.EscapedPath()
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		unescaped = escaped
	}
	u.Path = unescaped
	u.RawPath = escaped
	return &u
}

// EscapedPath returns the joined path, always starting with '/', never ending with one
// unless the path is the root.
func (e Endpoint) EscapedPath() string {
	return "/" + strings.Join(e.segments, "/")
}

// String returns the full URL.
func (e Endpoint) String() string {
	if e.base.Host == "" {
		return ""
	}
	return e.URL().String()
}

func escapeSegment(part string) string {
	switch part {
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	default:
		return url.PathEscape(part)
	}
}

// splitEscaped splits an already-escaped path into its non-empty segments. Segments
// taken from a parsed base URL keep their original escaping.
func splitEscaped(path string) []string {
	var parts []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
