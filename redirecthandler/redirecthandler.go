// redirecthandler/redirecthandler.go
/* Package redirecthandler decides whether an http.Client follows a redirect. Writes are
never followed, loops and over-long chains stop with an error, and credentials are
stripped before a request leaves the original host. */
package redirecthandler

import (
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// RedirectHandler contains configurations for handling HTTP redirects.
type RedirectHandler struct {
	Logger           *zap.SugaredLogger
	MaxRedirects     int      // maximum allowed redirects per request
	SensitiveHeaders []string // removed on cross-host redirects
}

// NewRedirectHandler creates a new instance of RedirectHandler.
func NewRedirectHandler(logger *zap.SugaredLogger, maxRedirects int) *RedirectHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &RedirectHandler{
		Logger:           logger,
		MaxRedirects:     maxRedirects,
		SensitiveHeaders: []string{"Authorization", "Cookie"},
	}
}

// AddSensitiveHeader allows adding configurable sensitive headers.
func (r *RedirectHandler) AddSensitiveHeader(header string) {
	r.SensitiveHeaders = append(r.SensitiveHeaders, header)
}

// WithRedirectHandling applies the redirect handling policy to an http.Client.
func (r *RedirectHandler) WithRedirectHandling(client *http.Client) {
	client.CheckRedirect = r.checkRedirect
}

// checkRedirect implements http.Client.CheckRedirect. req is the upcoming request and
// via holds the requests made so far, oldest first.
func (r *RedirectHandler) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) == 0 {
		return nil
	}

	original := via[0]
	if isWriteMethod(original.Method) {
		r.Logger.Warnw("Redirect attempted on write request, not following",
			"method", original.Method, "location", req.URL.String())
		return http.ErrUseLastResponse
	}

	if len(via) >= r.MaxRedirects {
		r.Logger.Warnw("Maximum redirects reached", "maxRedirects", r.MaxRedirects)
		return &MaxRedirectsError{MaxRedirects: r.MaxRedirects}
	}

	history := make([]*url.URL, 0, len(via)+1)
	for _, v := range via {
		history = append(history, v.URL)
	}
	history = append(history, req.URL)
	if hasLoop(history) {
		r.Logger.Errorw("Redirect loop detected", "url", req.URL.String())
		return &RedirectLoopError{URL: req.URL.String()}
	}

	previous := via[len(via)-1]
	if previous.URL != nil && req.URL.Host != previous.URL.Host {
		r.secureRequest(req)
	}

	r.Logger.Infow("Redirecting request",
		"from", previous.URL.String(), "to", req.URL.String(), "redirectCount", len(via))
	return nil
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// secureRequest removes sensitive headers from a request bound for another host.
func (r *RedirectHandler) secureRequest(req *http.Request) {
	for _, header := range r.SensitiveHeaders {
		if req.Header.Get(header) != "" {
			req.Header.Del(header)
			r.Logger.Infow("Removed sensitive header on cross-host redirect", "header", header)
		}
	}
}

// RedirectLoopError represents an error when a redirect loop is detected.
type RedirectLoopError struct {
	URL string
}

// Error returns a string representation of the RedirectLoopError.
func (e *RedirectLoopError) Error() string {
	return fmt.Sprintf("redirect loop detected at %s", e.URL)
}

// MaxRedirectsError represents an error when the maximum number of redirects is reached.
type MaxRedirectsError struct {
	MaxRedirects int
}

// Error returns a string representation of the MaxRedirectsError.
func (e *MaxRedirectsError) Error() string {
	return fmt.Sprintf("maximum redirects reached: %d", e.MaxRedirects)
}

// hasLoop checks if there's a loop in the redirect history.
func hasLoop(history []*url.URL) bool {
	seen := make(map[string]struct{}, len(history))
	for _, u := range history {
		if u == nil {
			continue
		}
		key := u.String()
		if _, exists := seen[key]; exists {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

// SetupRedirectHandler configures the HTTP client for redirect handling based on the
// client configuration. When followRedirects is false the client returns the first
// redirect response as is.
func SetupRedirectHandler(client *http.Client, followRedirects bool, maxRedirects int, log *zap.SugaredLogger) error {
	if !followRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		return nil
	}

	if maxRedirects < 1 {
		return fmt.Errorf("invalid maxRedirects value: %d", maxRedirects)
	}

	NewRedirectHandler(log, maxRedirects).WithRedirectHandling(client)
	if log != nil {
		log.Infow("Redirect handling enabled", "maxRedirects", maxRedirects)
	}
	return nil
}
