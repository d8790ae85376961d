// concurrency/metrics.go
package concurrency

import (
	"net/http"

	"go.uber.org/zap"
)

// RecordResponse counts a completed exchange. A statusCode of zero means the request
// never produced a response.
func (ch *ConcurrencyHandler) RecordResponse(statusCode int) {
	ch.Metrics.Lock.Lock()
	defer ch.Metrics.Lock.Unlock()

	switch {
	case statusCode == 0:
		ch.Metrics.TotalTransportErrors++
	case statusCode == http.StatusTooManyRequests:
		ch.Metrics.TotalRateLimitErrors++
		ch.logger.Warn("Rate limited by API", zap.Int64("rate_limit_errors", ch.Metrics.TotalRateLimitErrors))
	case statusCode >= 500 && statusCode < 600:
		ch.Metrics.TotalServerErrors++
	}
}

// MetricsSnapshot is a point-in-time copy of ConcurrencyMetrics.
type MetricsSnapshot struct {
	TotalRequests        int64
	TotalRateLimitErrors int64
	TotalServerErrors    int64
	TotalTransportErrors int64
	InFlight             int64
	ErrorRate            float64 // (rate limit + server errors) / total requests
}

// Snapshot copies the current metrics.
func (ch *ConcurrencyHandler) Snapshot() MetricsSnapshot {
	ch.Metrics.Lock.Lock()
	defer ch.Metrics.Lock.Unlock()

	s := MetricsSnapshot{
		TotalRequests:        ch.Metrics.TotalRequests,
		TotalRateLimitErrors: ch.Metrics.TotalRateLimitErrors,
		TotalServerErrors:    ch.Metrics.TotalServerErrors,
		TotalTransportErrors: ch.Metrics.TotalTransportErrors,
		InFlight:             ch.Metrics.InFlight,
	}
	if s.TotalRequests > 0 {
		s.ErrorRate = float64(s.TotalRateLimitErrors+s.TotalServerErrors) / float64(s.TotalRequests)
	}
	return s
}
