// concurrency/handler.go
package concurrency

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deploymenttheory/go-api-sdk-cscart/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// ConcurrencyHandler caps the number of requests in flight against one API host.
type ConcurrencyHandler struct {
	sem            *semaphore.Weighted
	limit          int64
	acquireTimeout time.Duration
	logger         logger.Logger
	Metrics        *ConcurrencyMetrics
}

// ConcurrencyMetrics counts what passed through a handler.
type ConcurrencyMetrics struct {
	TotalRequests        int64         // permits granted
	TotalRateLimitErrors int64         // 429 responses
	TotalServerErrors    int64         // 5xx responses
	TotalTransportErrors int64         // no response at all
	PermitWaitTime       time.Duration // cumulative time spent waiting for permits
	InFlight             int64
	Lock                 sync.Mutex
}

// NewConcurrencyHandler builds a handler allowing at most limit concurrent requests.
// A zero acquireTimeout selects DefaultAcquireTimeout.
func NewConcurrencyHandler(limit int, acquireTimeout time.Duration, log logger.Logger) (*ConcurrencyHandler, error) {
	if limit < MinConcurrency || limit > MaxConcurrency {
		return nil, fmt.Errorf("concurrency limit %d out of range [%d, %d]", limit, MinConcurrency, MaxConcurrency)
	}
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ConcurrencyHandler{
		sem:            semaphore.NewWeighted(int64(limit)),
		limit:          int64(limit),
		acquireTimeout: acquireTimeout,
		logger:         log,
		Metrics:        &ConcurrencyMetrics{},
	}, nil
}

// Limit returns the configured permit count.
func (ch *ConcurrencyHandler) Limit() int {
	return int(ch.limit)
}

// RequestIDKey is the context key under which the request id is stored.
type RequestIDKey struct{}

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID uuid.UUID) context.Context {
	return context.WithValue(ctx, RequestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(RequestIDKey{}).(uuid.UUID)
	return id, ok
}
