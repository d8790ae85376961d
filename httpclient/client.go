// httpclient/client.go
/* Package httpclient executes authenticated requests against the CS-Cart REST API. A
Client sends exactly one HTTP request per call, never retries, and reports every
expected failure mode as a *response.Outcome rather than as an error. */
package httpclient

import (
	"fmt"
	"net/http"

	"github.com/deploymenttheory/go-api-sdk-cscart/concurrency"
	"github.com/deploymenttheory/go-api-sdk-cscart/cookiejar"
	"github.com/deploymenttheory/go-api-sdk-cscart/logger"
	"github.com/deploymenttheory/go-api-sdk-cscart/proxy"
	"github.com/deploymenttheory/go-api-sdk-cscart/redirecthandler"
	"github.com/deploymenttheory/go-api-sdk-cscart/version"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client is safe for concurrent use.
type Client struct {
	config    ClientConfig
	http      *http.Client
	resty     *resty.Client
	userAgent string

	Logger      logger.Logger
	Concurrency *concurrency.ConcurrencyHandler // nil when unlimited
}

// BuildClient creates a new Client from config. Unset fields take their defaults.
func BuildClient(config ClientConfig) (*Client, error) {
	SetDefaultValuesClientConfig(&config)
	if err := validateClientConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := config.Logger
	if log == nil {
		parsedLogLevel := logger.ParseLogLevelFromString(config.LogLevel)
		log = logger.BuildLogger(parsedLogLevel, config.LogOutputFormat, config.LogConsoleSeparator)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if err := proxy.InitializeProxy(transport, config.ProxyURL, config.ProxyUsername, config.ProxyPassword, log); err != nil {
		return nil, err
	}

	httpClient := &http.Client{Transport: transport}
	if config.CustomTimeout > 0 {
		httpClient.Timeout = config.CustomTimeout
	}

	if err := redirecthandler.SetupRedirectHandler(httpClient, config.FollowRedirects, config.MaxRedirects, log.Sugar()); err != nil {
		return nil, err
	}

	if err := cookiejar.SetupCookieJar(httpClient, config.EnableCookieJar, log); err != nil {
		return nil, err
	}

	var limiter *concurrency.ConcurrencyHandler
	if config.MaxConcurrentRequests > 0 {
		handler, err := concurrency.NewConcurrencyHandler(config.MaxConcurrentRequests, config.ConcurrencyAcquireTimeout, log)
		if err != nil {
			return nil, err
		}
		limiter = handler
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = version.GetUserAgentHeader()
	}

	restyClient := resty.NewWithClient(httpClient).
		SetLogger(log.Sugar()).
		SetRetryCount(0).
		SetAllowGetMethodPayload(true)

	client := &Client{
		config:      config,
		http:        httpClient,
		resty:       restyClient,
		userAgent:   userAgent,
		Logger:      log,
		Concurrency: limiter,
	}

	log.Debug("New API client initialized",
		zap.String("log_level", config.LogLevel),
		zap.String("log_output_format", config.LogOutputFormat),
		zap.Bool("hide_sensitive_data", config.HideSensitiveData),
		zap.Int("max_concurrent_requests", config.MaxConcurrentRequests),
		zap.Duration("custom_timeout", config.CustomTimeout),
		zap.Bool("follow_redirects", config.FollowRedirects),
		zap.Int("max_redirects", config.MaxRedirects),
		zap.Bool("proxy", config.ProxyURL != ""),
		zap.Bool("cookie_jar", config.EnableCookieJar),
	)

	return client, nil
}

// Config returns a copy of the configuration the client was built with, defaults applied.
func (c *Client) Config() ClientConfig {
	return c.config
}

// HTTPClient returns the underlying *http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}
