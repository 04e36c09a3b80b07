package hold

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeperEvictsExpiredHolds(t *testing.T) {
	r := NewRegistry(5 * time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.SetClock(fixedClock(base))

	_, err := r.PlaceHold(10, 1, 42)
	require.NoError(t, err)
	_, err = r.PlaceHold(11, 1, 43)
	require.NoError(t, err)

	r.SetClock(fixedClock(base.Add(6 * time.Minute)))

	s := NewSweeper(r, 5*time.Millisecond)
	go s.Start(context.Background())

	assert.Eventually(t, func() bool { return r.Len() == 0 },
		time.Second, 5*time.Millisecond)

	s.Stop()
}

func TestSweeperStopIsDeterministic(t *testing.T) {
	s := NewSweeper(NewRegistry(0), time.Hour)
	go s.Start(context.Background())

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the loop exited")
	}
}

func TestSweeperStopsOnContextCancel(t *testing.T) {
	s := NewSweeper(NewRegistry(0), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	go s.Start(ctx)
	cancel()

	select {
	case <-s.doneCh:
	case <-time.After(time.Second):
		t.Fatal("loop did not exit on context cancellation")
	}
}
