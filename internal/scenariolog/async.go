package scenariolog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single background write
const DefaultTimeout = 5 * time.Second

// maxFingerprints caps the dedup memory; the set is cleared when full
const maxFingerprints = 4096

// Async writes scenarios in the background. Each write is bounded by a
// timeout, repeats of the same inputs are skipped, and errors are only logged.
type Async struct {
	sink    Sink
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	seen   map[string]struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewAsync wraps a sink. A non-positive timeout uses DefaultTimeout.
func NewAsync(sink Sink, timeout time.Duration, logger *zap.Logger) *Async {
	if sink == nil {
		sink = Nop{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Async{
		sink:    sink,
		timeout: timeout,
		logger:  logger,
		seen:    make(map[string]struct{}),
	}
}

// Submit queues a scenario and reports whether a write was started. It never
// blocks on the sink.
func (a *Async) Submit(s Scenario) bool {
	fp := s.Fingerprint()

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return false
	}
	if _, dup := a.seen[fp]; dup {
		a.mu.Unlock()
		return false
	}
	if len(a.seen) >= maxFingerprints {
		a.seen = make(map[string]struct{})
	}
	a.seen[fp] = struct{}{}
	a.wg.Add(1)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if err := a.sink.Log(ctx, s); err != nil {
			a.logger.Warn("scenario log write failed",
				zap.String("op", "scenariolog.submit"),
				zap.String("id", s.ID.String()),
				zap.Error(err))
		}
	}()
	return true
}

// Close waits for pending writes and closes the sink
func (a *Async) Close() error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	a.wg.Wait()
	return a.sink.Close()
}
