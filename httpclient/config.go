// httpclient/config.go
package httpclient

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/deploymenttheory/go-api-sdk-cscart/concurrency"
	"github.com/deploymenttheory/go-api-sdk-cscart/logger"
)

const (
	DefaultLogLevelString        = "LogLevelInfo"
	DefaultLogOutputFormatString = logger.LogOutputJSON
	DefaultLogConsoleSeparator   = "	"
	DefaultHideSensitiveData     = true
	DefaultMaxConcurrentRequests = 0 // unlimited
	DefaultCustomTimeout         = 30 * time.Second
	DefaultFollowRedirects       = false
	DefaultMaxRedirects          = 5
)

// ClientConfig holds the transport settings of a Client. The zero value plus
// SetDefaultValuesClientConfig is a valid configuration.
type ClientConfig struct {
	// Log
	LogLevel            string `mapstructure:"log_level" json:"log_level,omitempty"`
	LogOutputFormat     string `mapstructure:"log_output_format" json:"log_output_format,omitempty"` // "json" or "console"
	LogConsoleSeparator string `mapstructure:"log_console_separator" json:"log_console_separator,omitempty"`
	HideSensitiveData   bool   `mapstructure:"hide_sensitive_data" json:"hide_sensitive_data"` // the file and env loaders default this to true

	// Logger, when set, is used instead of building one from the Log* fields.
	Logger logger.Logger `mapstructure:"-" json:"-"`

	// UserAgent defaults to version.GetUserAgentHeader().
	UserAgent string `mapstructure:"user_agent" json:"user_agent,omitempty"`

	// Concurrency. Zero means unlimited.
	MaxConcurrentRequests     int           `mapstructure:"max_concurrent_requests" json:"max_concurrent_requests,omitempty"`
	ConcurrencyAcquireTimeout time.Duration `mapstructure:"concurrency_acquire_timeout" json:"concurrency_acquire_timeout,omitempty"`

	// CustomTimeout bounds one whole exchange. Zero selects DefaultCustomTimeout; a
	// negative value disables the client-side timeout. In config files and the
	// environment it is a duration string such as "30s" or a number of seconds.
	CustomTimeout time.Duration `mapstructure:"custom_timeout" json:"custom_timeout,omitempty"`

	// Redirects
	FollowRedirects bool `mapstructure:"follow_redirects" json:"follow_redirects"`
	MaxRedirects    int  `mapstructure:"max_redirects" json:"max_redirects,omitempty"`

	// Proxy
	ProxyURL      string `mapstructure:"proxy_url" json:"proxy_url,omitempty"`
	ProxyUsername string `mapstructure:"proxy_username" json:"proxy_username,omitempty"`
	ProxyPassword string `mapstructure:"proxy_password" json:"-"`

	// Cookies are off by default so that calls stay independent of each other.
	EnableCookieJar bool `mapstructure:"enable_cookie_jar" json:"enable_cookie_jar"`
}

// SetDefaultValuesClientConfig fills every unset field with its default.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevelString
	}

	if config.LogOutputFormat == "" {
		config.LogOutputFormat = DefaultLogOutputFormatString
	}

	if config.LogConsoleSeparator == "" {
		config.LogConsoleSeparator = DefaultLogConsoleSeparator
	}

	if config.CustomTimeout == 0 {
		config.CustomTimeout = DefaultCustomTimeout
	}

	if config.ConcurrencyAcquireTimeout == 0 {
		config.ConcurrencyAcquireTimeout = concurrency.DefaultAcquireTimeout
	}

	if config.FollowRedirects && config.MaxRedirects == 0 {
		config.MaxRedirects = DefaultMaxRedirects
	}
}

// validateClientConfig reports the first invalid field.
func validateClientConfig(config ClientConfig) error {
	validLogLevels := []string{
		"LogLevelDebug", "debug",
		"LogLevelInfo", "info",
		"LogLevelWarn", "warn", "warning",
		"LogLevelError", "error",
		"LogLevelPanic", "panic",
		"LogLevelFatal", "fatal",
		"LogLevelNone", "none",
	}
	if !slices.Contains(validLogLevels, config.LogLevel) {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	validLogFormats := []string{logger.LogOutputJSON, logger.LogOutputConsole}
	if !slices.Contains(validLogFormats, config.LogOutputFormat) {
		return fmt.Errorf("invalid log output format: %s", config.LogOutputFormat)
	}

	if config.MaxConcurrentRequests < 0 || config.MaxConcurrentRequests > concurrency.MaxConcurrency {
		return fmt.Errorf("max concurrent requests must be between 0 and %d", concurrency.MaxConcurrency)
	}

	if config.ConcurrencyAcquireTimeout < 0 {
		return errors.New("concurrency acquire timeout cannot be negative")
	}

	if config.FollowRedirects && config.MaxRedirects < 1 {
		return errors.New("max redirects cannot be less than 1")
	}

	if config.ProxyURL != "" {
		u, err := url.Parse(config.ProxyURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid proxy url: %s", config.ProxyURL)
		}
	}

	return nil
}
