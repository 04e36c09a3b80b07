package hold

import (
	"context"
	"log"
	"time"
)

// DefaultSweepInterval is how often the sweeper scans the registry.
// It must stay well below the hold duration so expired entries do not
// pile up, but sweep timing never affects correctness.
const DefaultSweepInterval = 30 * time.Second

// Sweeper periodically evicts expired holds from a registry.  It is a
// cancellable background task: Start runs until the context is
// cancelled or Stop is called, and Stop blocks until the loop has
// fully exited so shutdown and tests are deterministic.
type Sweeper struct {
	registry *Registry
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSweeper builds a sweeper for the registry.  A non-positive
// interval falls back to DefaultSweepInterval.
func NewSweeper(r *Registry, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		registry: r,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweep loop.  Call it from its own goroutine; it
// returns when ctx is cancelled or Stop is invoked.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if n := s.registry.EvictExpired(); n > 0 {
				log.Printf("hold sweeper: released %d expired hold(s)", n)
			}
		}
	}
}

// Stop signals the loop to exit and waits for it to finish.  It must
// be called at most once and only after Start has been launched.
func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}
