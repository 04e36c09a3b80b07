package hold

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestPlaceHoldAndGet(t *testing.T) {
	r := NewRegistry(5 * time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.SetClock(fixedClock(base))

	h, err := r.PlaceHold(10, 1, 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), h.UserID)
	assert.Equal(t, base.Add(5*time.Minute), h.ExpiresAt)

	got, ok := r.Get(10)
	require.True(t, ok)
	assert.Equal(t, h, got)
}

func TestPlaceHoldRejectsOtherUser(t *testing.T) {
	r := NewRegistry(5 * time.Minute)

	_, err := r.PlaceHold(10, 1, 42)
	require.NoError(t, err)

	_, err = r.PlaceHold(10, 1, 43)
	assert.ErrorIs(t, err, ErrSeatHeldByOther)

	// The original hold is untouched.
	got, ok := r.Get(10)
	require.True(t, ok)
	assert.Equal(t, uint64(42), got.UserID)
}

func TestPlaceHoldRenewalRefreshesExpiry(t *testing.T) {
	r := NewRegistry(5 * time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.SetClock(fixedClock(base))

	first, err := r.PlaceHold(10, 1, 42)
	require.NoError(t, err)

	r.SetClock(fixedClock(base.Add(3 * time.Minute)))
	renewed, err := r.PlaceHold(10, 1, 42)
	require.NoError(t, err)
	assert.True(t, renewed.ExpiresAt.After(first.ExpiresAt))
	assert.Equal(t, base.Add(8*time.Minute), renewed.ExpiresAt)
}

func TestOneHoldPerUserPerShowtime(t *testing.T) {
	r := NewRegistry(5 * time.Minute)

	_, err := r.PlaceHold(10, 1, 42)
	require.NoError(t, err)

	// Holding a second seat in the same showtime drops the first.
	_, err = r.PlaceHold(11, 1, 42)
	require.NoError(t, err)
	_, ok := r.Get(10)
	assert.False(t, ok)
	_, ok = r.Get(11)
	assert.True(t, ok)

	// A different showtime is unaffected.
	_, err = r.PlaceHold(20, 2, 42)
	require.NoError(t, err)
	_, ok = r.Get(11)
	assert.True(t, ok)
	_, ok = r.Get(20)
	assert.True(t, ok)
}

func TestExpiredHoldIsInvisible(t *testing.T) {
	r := NewRegistry(5 * time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.SetClock(fixedClock(base))

	_, err := r.PlaceHold(10, 1, 42)
	require.NoError(t, err)

	// Exactly at expiry the hold is gone; no sweep has run.
	r.SetClock(fixedClock(base.Add(5 * time.Minute)))
	_, ok := r.Get(10)
	assert.False(t, ok)
	assert.False(t, r.HeldByOther(10, 43))
	assert.Empty(t, r.ActiveForShowtime(1))

	// The seat can be taken by someone else immediately.
	_, err = r.PlaceHold(10, 1, 43)
	assert.NoError(t, err)
}

func TestReleaseOnlyByHolder(t *testing.T) {
	r := NewRegistry(5 * time.Minute)

	_, err := r.PlaceHold(10, 1, 42)
	require.NoError(t, err)

	assert.ErrorIs(t, r.Release(10, 43), ErrNotHolder)
	assert.ErrorIs(t, r.Release(99, 42), ErrNotHolder)

	require.NoError(t, r.Release(10, 42))
	_, ok := r.Get(10)
	assert.False(t, ok)

	// Releasing an already-released seat fails.
	assert.ErrorIs(t, r.Release(10, 42), ErrNotHolder)
}

func TestReleaseExpiredHoldFails(t *testing.T) {
	r := NewRegistry(5 * time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.SetClock(fixedClock(base))

	_, err := r.PlaceHold(10, 1, 42)
	require.NoError(t, err)

	r.SetClock(fixedClock(base.Add(6 * time.Minute)))
	assert.ErrorIs(t, r.Release(10, 42), ErrNotHolder)
}

func TestEvictExpired(t *testing.T) {
	r := NewRegistry(5 * time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.SetClock(fixedClock(base))

	_, err := r.PlaceHold(10, 1, 42)
	require.NoError(t, err)
	_, err = r.PlaceHold(11, 1, 43)
	require.NoError(t, err)

	r.SetClock(fixedClock(base.Add(2 * time.Minute)))
	_, err = r.PlaceHold(12, 2, 44)
	require.NoError(t, err)

	r.SetClock(fixedClock(base.Add(6 * time.Minute)))
	assert.Equal(t, 2, r.EvictExpired())
	assert.Equal(t, 1, r.Len())
	_, ok := r.Get(12)
	assert.True(t, ok)
}

func TestCompleteRemovesHold(t *testing.T) {
	r := NewRegistry(5 * time.Minute)

	_, err := r.PlaceHold(10, 1, 42)
	require.NoError(t, err)

	r.Complete(10)
	_, ok := r.Get(10)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestConcurrentPlaceHoldSingleWinner(t *testing.T) {
	r := NewRegistry(5 * time.Minute)

	const contenders = 32
	var wg sync.WaitGroup
	wins := make(chan uint64, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(userID uint64) {
			defer wg.Done()
			if _, err := r.PlaceHold(10, 1, userID); err == nil {
				wins <- userID
			}
		}(uint64(i + 1))
	}
	wg.Wait()
	close(wins)

	var winners []uint64
	for w := range wins {
		winners = append(winners, w)
	}
	require.Len(t, winners, 1)

	got, ok := r.Get(10)
	require.True(t, ok)
	assert.Equal(t, winners[0], got.UserID)
}

func TestRemaining(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := Hold{ExpiresAt: base.Add(90*time.Second + 500*time.Millisecond)}

	// Partial seconds round up.
	assert.Equal(t, 91, h.Remaining(base))
	assert.Equal(t, 90, h.Remaining(base.Add(500*time.Millisecond)))
	assert.Equal(t, 0, h.Remaining(base.Add(2*time.Minute)))
}
