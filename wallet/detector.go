package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"questchain/models"
)

const (
	DefaultDetectAttempts = 10
	DefaultDetectInterval = 100 * time.Millisecond
)

var errNotYet = errors.New("not observed yet")

// poll calls probe at a fixed interval until it reports ok or the attempts run out.
func poll[T any](ctx context.Context, attempts uint, interval time.Duration, probe func() (T, bool)) (T, bool) {
	v, err := backoff.Retry(ctx, func() (T, error) {
		v, ok := probe()
		if !ok {
			var zero T
			return zero, errNotYet
		}
		return v, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(interval)),
		backoff.WithMaxTries(attempts),
	)
	return v, err == nil
}

// Detector waits for providers to appear in the environment.
type Detector struct {
	env      Lookup
	attempts uint
	interval time.Duration
}

func NewDetector(env Lookup, attempts uint, interval time.Duration) *Detector {
	if attempts == 0 {
		attempts = DefaultDetectAttempts
	}
	if interval <= 0 {
		interval = DefaultDetectInterval
	}
	return &Detector{env: env, attempts: attempts, interval: interval}
}

// Detect reports whether a provider of the given kind shows up within the polling budget.
// Worst case it blocks for attempts*interval. A cancelled ctx ends the poll as "not detected".
func (d *Detector) Detect(ctx context.Context, kind models.ProviderKind) bool {
	_, ok := d.resolve(ctx, kind)
	return ok
}

func (d *Detector) resolve(ctx context.Context, kind models.ProviderKind) (Provider, bool) {
	return poll(ctx, d.attempts, d.interval, func() (Provider, bool) {
		return d.env.Lookup(kind)
	})
}
