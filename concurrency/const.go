// concurrency/const.go
package concurrency

import "time"

const (
	// MaxConcurrency is the largest permit count a handler accepts.
	MaxConcurrency = 100

	// MinConcurrency is the smallest permit count a handler accepts.
	MinConcurrency = 1

	// DefaultAcquireTimeout bounds how long a request waits for a permit before it
	// fails, independent of the caller's context deadline.
	DefaultAcquireTimeout = 10 * time.Second
)
