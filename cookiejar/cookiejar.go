// cookiejar/cookiejar.go

/* Package cookiejar optionally attaches an in-memory cookie jar to an http.Client and
renders response cookies for logs with session values masked. */
package cookiejar

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/deploymenttheory/go-api-sdk-cscart/logger"
	"go.uber.org/zap"
)

// SetupCookieJar initializes the HTTP client with a cookie jar if enabled in the configuration.
func SetupCookieJar(client *http.Client, enableCookieJar bool, log logger.Logger) error {
	if !enableCookieJar {
		return nil
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("setupCookieJar failed: %w", err)
	}
	client.Jar = jar
	if log != nil {
		log.Debug("Cookie jar enabled")
	}
	return nil
}

// IsSensitiveCookie reports whether a cookie carries a session identifier. CS-Cart names
// its session cookies sid_<area>_<hash>.
func IsSensitiveCookie(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "sid_") || lower == "sessionid" || lower == "phpsessid"
}

// RedactSensitiveCookies returns copies of cookies with sensitive values replaced.
func RedactSensitiveCookies(cookies []*http.Cookie) []*http.Cookie {
	redacted := make([]*http.Cookie, 0, len(cookies))
	for _, cookie := range cookies {
		c := *cookie
		if IsSensitiveCookie(c.Name) {
			c.Value = "REDACTED"
		}
		redacted = append(redacted, &c)
	}
	return redacted
}

// CookiesFromHeader parses every Set-Cookie header in header.
func CookiesFromHeader(header http.Header) []*http.Cookie {
	cookies := []*http.Cookie{}
	for _, cookieHeader := range header.Values("Set-Cookie") {
		if cookie := ParseCookieHeader(cookieHeader); cookie != nil {
			cookies = append(cookies, cookie)
		}
	}
	return cookies
}

// ParseCookieHeader parses the name and value of a single Set-Cookie header.
func ParseCookieHeader(header string) *http.Cookie {
	first, _, _ := strings.Cut(header, ";")
	name, value, ok := strings.Cut(first, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return nil
	}
	return &http.Cookie{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)}
}

// LogResponseCookies logs the cookies set by a response at debug level, masked.
func LogResponseCookies(header http.Header, log logger.Logger) {
	if log == nil || log.GetLogLevel() > logger.LogLevelDebug {
		return
	}
	cookies := CookiesFromHeader(header)
	if len(cookies) == 0 {
		return
	}
	names := make([]string, 0, len(cookies))
	for _, c := range RedactSensitiveCookies(cookies) {
		names = append(names, c.Name+"="+c.Value)
	}
	log.Debug("Response cookies", zap.Strings("cookies", names))
}
