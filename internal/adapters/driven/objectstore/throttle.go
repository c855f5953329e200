// Package objectstore holds the object store adapters and decorators shared
// by all backends.
package objectstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
)

// Ensure Throttled implements the interface.
var _ driven.ObjectStore = (*Throttled)(nil)

// DefaultBackoff is how long writes pause after the backend reports
// throttling.
const DefaultBackoff = 30 * time.Second

// Throttled rate limits writes to an underlying store with a token bucket.
// When a write fails with domain.ErrBackendRateLimited, later writes wait
// out a backoff period first. The failed write itself is not retried.
type Throttled struct {
	store   driven.ObjectStore
	limiter *rate.Limiter
	backoff time.Duration

	mu      sync.Mutex
	retryAt time.Time
}

// NewThrottled wraps store. A non-positive requestsPerSecond returns store
// unchanged.
func NewThrottled(store driven.ObjectStore, requestsPerSecond float64, burst int) driven.ObjectStore {
	if requestsPerSecond <= 0 {
		return store
	}
	if burst < 1 {
		burst = 1
	}
	return &Throttled{
		store:   store,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		backoff: DefaultBackoff,
	}
}

// Name returns the wrapped store's name.
func (t *Throttled) Name() string {
	return t.store.Name()
}

// Put waits for a token, then writes.
func (t *Throttled) Put(ctx context.Context, obj domain.StoredObject) error {
	if err := t.wait(ctx); err != nil {
		return err
	}

	err := t.store.Put(ctx, obj)
	if errors.Is(err, domain.ErrBackendRateLimited) {
		t.mu.Lock()
		t.retryAt = time.Now().Add(t.backoff)
		t.mu.Unlock()
	}
	return err
}

// wait blocks until any backoff has passed and the token bucket allows a
// request.
func (t *Throttled) wait(ctx context.Context) error {
	t.mu.Lock()
	retryAt := t.retryAt
	t.mu.Unlock()

	if time.Now().Before(retryAt) {
		timer := time.NewTimer(time.Until(retryAt))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return t.limiter.Wait(ctx)
}
