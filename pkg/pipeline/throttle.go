package pipeline

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle spaces outbound search requests shared by all goroutines of a run. A nil
// or zero Throttle does not limit.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle allows requestsPerSecond calls with no burst; a non-positive rate
// disables limiting.
func NewThrottle(requestsPerSecond float64) *Throttle {
	if requestsPerSecond <= 0 {
		return &Throttle{}
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1)}
}

// Execute waits for the next slot and runs fn.
func (t *Throttle) Execute(ctx context.Context, fn func() error) error {
	if t != nil && t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return err
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}
