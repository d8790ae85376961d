// httpclient/execute.go
package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/deploymenttheory/go-api-sdk-cscart/concurrency"
	"github.com/deploymenttheory/go-api-sdk-cscart/cookiejar"
	"github.com/deploymenttheory/go-api-sdk-cscart/credentials"
	"github.com/deploymenttheory/go-api-sdk-cscart/headers"
	"github.com/deploymenttheory/go-api-sdk-cscart/headers/redact"
	"github.com/deploymenttheory/go-api-sdk-cscart/logger"
	"github.com/deploymenttheory/go-api-sdk-cscart/response"
	"github.com/deploymenttheory/go-api-sdk-cscart/status"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Execute sends req once with creds and classifies the result.
//
// The returned error is non-nil only for mistakes in the call itself: a nil request, an
// unsupported method, an unparseable URL, a body that cannot be encoded, or
// credentials that were never constructed. These are detected before any network I/O.
// Everything that can go wrong on the wire, including timeouts and cancellation, is
// reported through the Outcome.
func (c *Client) Execute(ctx context.Context, req *Request, creds credentials.Credentials) (*response.Outcome, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	method, err := normalizeMethod(req.Method)
	if err != nil {
		return nil, err
	}
	target, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("parse request url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("parse request url: %q is not absolute", req.URL)
	}
	if creds.IsZero() {
		return nil, fmt.Errorf("execute %s %s: %w", method, req.URL, credentials.ErrInvalidCredentials)
	}

	var payload []byte
	var contentType string
	if req.Body != nil {
		payload, contentType, err = req.Body.Encode()
		if err != nil {
			return nil, err
		}
	}

	requestID, ok := concurrency.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.New()
		ctx = concurrency.WithRequestID(ctx, requestID)
	}
	id := requestID.String()
	log := c.Logger.With(zap.String("request_id", id))
	targetURL := target.String()

	if c.Concurrency != nil {
		if _, _, err := c.Concurrency.AcquireConcurrencyToken(ctx); err != nil {
			log.LogError("concurrency_acquire_failed", method, targetURL, 0, err)
			return response.Transport(method, targetURL, err), nil
		}
		defer c.Concurrency.ReleaseConcurrencyToken(requestID)
	}

	hh := headers.NewHeaderHandler(log)
	hh.SetAuthorization(creds.Header())
	hh.SetAccept(ContentTypeJSON)
	hh.SetUserAgent(c.userAgent)
	hh.SetContentType(contentType)
	hh.ApplyOverrides(req.Headers)
	hh.LogHeaders(id, c.config.HideSensitiveData)

	r := c.resty.R().
		SetContext(ctx).
		SetHeaderMultiValues(hh.Header())
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if payload != nil {
		r.SetBody(payload)
	}

	log.LogRequestStart(id, method, targetURL, redact.RedactHeaders(true, hh.Header()))
	start := time.Now()
	resp, err := r.Execute(method, targetURL)
	duration := time.Since(start)

	if err != nil {
		c.record(0)
		log.LogError("transport_error", method, targetURL, 0, err)
		if IsIdempotentHTTPMethod(method) {
			log.Debug("No response received, request can be resent", zap.String("method", method))
		}
		return response.Transport(method, targetURL, err), nil
	}

	statusCode := resp.StatusCode()
	c.record(statusCode)
	log.LogRequestEnd(id, method, targetURL, statusCode, duration)
	headers.CheckDeprecationHeader(resp.Header(), targetURL, log)
	if status.IsRedirectStatusCode(statusCode) {
		logRedirectNotFollowed(log, statusCode, targetURL, resp.Header().Get("Location"))
	}
	if c.config.EnableCookieJar {
		cookiejar.LogResponseCookies(resp.Header(), log)
	}

	outcome := response.Normalize(statusCode, resp.Header(), resp.Body())
	if !outcome.IsSuccess() {
		log.LogError(outcome.Kind.String(), method, targetURL, statusCode, outcome.Err())
	}
	return outcome, nil
}

// logRedirectNotFollowed notes a 3xx that came back to the caller, either because
// redirects are off or because the request was a write.
func logRedirectNotFollowed(log logger.Logger, statusCode int, url, location string) {
	if status.IsPermanentRedirect(statusCode) {
		log.Warn("Endpoint moved permanently",
			zap.Int("status_code", statusCode),
			zap.String("url", url),
			zap.String("location", location),
		)
		return
	}
	log.Debug("Redirect not followed",
		zap.Int("status_code", statusCode),
		zap.String("url", url),
		zap.String("location", location),
	)
}

func (c *Client) record(statusCode int) {
	if c.Concurrency != nil {
		c.Concurrency.RecordResponse(statusCode)
	}
}
