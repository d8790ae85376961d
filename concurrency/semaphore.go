// concurrency/semaphore.go
/* Package concurrency limits how many requests a client has in flight at once. Permits
come from a weighted semaphore; each acquisition is tagged with a request id that
follows the request through the logs. */
package concurrency

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AcquireConcurrencyToken blocks until a permit is free, the acquire timeout passes, or
// ctx is done. The returned context carries the request id; pass the id to
// ReleaseConcurrencyToken once the request completes.
//
// Example:
//
//	ctx, requestID, err := handler.AcquireConcurrencyToken(ctx)
//	if err != nil {
//	    return err
//	}
//	defer handler.ReleaseConcurrencyToken(requestID)
func (ch *ConcurrencyHandler) AcquireConcurrencyToken(ctx context.Context) (context.Context, uuid.UUID, error) {
	requestID, ok := RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.New()
	}
	start := time.Now()

	acquireCtx, cancel := context.WithTimeout(ctx, ch.acquireTimeout)
	defer cancel()

	if err := ch.sem.Acquire(acquireCtx, 1); err != nil {
		ch.logger.Warn("Failed to acquire concurrency token",
			zap.String("request_id", requestID.String()),
			zap.Duration("waited", time.Since(start)),
			zap.Error(err),
		)
		return ctx, requestID, err
	}

	waited := time.Since(start)
	ch.Metrics.Lock.Lock()
	ch.Metrics.TotalRequests++
	ch.Metrics.PermitWaitTime += waited
	ch.Metrics.InFlight++
	inFlight := ch.Metrics.InFlight
	ch.Metrics.Lock.Unlock()

	ch.logger.Debug("Acquired concurrency token",
		zap.String("request_id", requestID.String()),
		zap.Duration("acquisition_time", waited),
		zap.Int64("utilized_tokens", inFlight),
		zap.Int64("available_tokens", ch.limit-inFlight),
	)

	return WithRequestID(ctx, requestID), requestID, nil
}

// ReleaseConcurrencyToken returns a permit taken by AcquireConcurrencyToken.
func (ch *ConcurrencyHandler) ReleaseConcurrencyToken(requestID uuid.UUID) {
	ch.sem.Release(1)

	ch.Metrics.Lock.Lock()
	ch.Metrics.InFlight--
	inFlight := ch.Metrics.InFlight
	ch.Metrics.Lock.Unlock()

	ch.logger.Debug("Released concurrency token",
		zap.String("request_id", requestID.String()),
		zap.Int64("utilized_tokens", inFlight),
		zap.Int64("available_tokens", ch.limit-inFlight),
	)
}
