package hold

import (
	"sync"
	"time"
)

// DefaultDuration is how long a seat stays held after (re)placement.
// The timer restarts every time the holder re-places the same hold.
const DefaultDuration = 5 * time.Minute

// Registry tracks all live seat holds for the process.  A single
// mutex serializes every mutation; with one hold per checkout the
// contention is negligible and a global lock keeps the invariants easy
// to verify.  The registry is constructed once at startup and shared
// by the HTTP handlers and the expiry sweeper.
type Registry struct {
	mu       sync.Mutex
	holds    map[uint64]Hold // keyed by seat ID
	duration time.Duration
	now      func() time.Time // injectable clock for tests
}

// NewRegistry returns an empty registry whose holds last the given
// duration.  A non-positive duration falls back to DefaultDuration.
func NewRegistry(duration time.Duration) *Registry {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Registry{
		holds:    make(map[uint64]Hold),
		duration: duration,
		now:      time.Now,
	}
}

// SetClock replaces the registry's time source.  Tests use this to
// advance time past hold expiry without sleeping.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// PlaceHold records that userID intends to book seatID of showtimeID.
// Under the registry lock it:
//  1. rejects with ErrSeatHeldByOther when a live hold by a different
//     user exists for the seat;
//  2. evicts any other live hold this user owns within the same
//     showtime (one hold per user per showtime);
//  3. writes the entry with a fresh expiry.
// Re-placing a hold the caller already owns simply refreshes the
// expiry.  The caller is responsible for verifying that the seat is
// persistently available before invoking PlaceHold; the held-by-other
// check is re-evaluated here so that two concurrent callers can never
// both be admitted.
func (r *Registry) PlaceHold(seatID, showtimeID, userID uint64) (Hold, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if existing, ok := r.holds[seatID]; ok && now.Before(existing.ExpiresAt) && existing.UserID != userID {
		return Hold{}, ErrSeatHeldByOther
	}
	// One hold per user per showtime: drop any other seat this user is
	// sitting on.  The previous seat silently becomes available again.
	for sid, h := range r.holds {
		if sid != seatID && h.UserID == userID && h.ShowtimeID == showtimeID {
			delete(r.holds, sid)
		}
	}
	h := Hold{
		UserID:     userID,
		ShowtimeID: showtimeID,
		ExpiresAt:  now.Add(r.duration),
	}
	r.holds[seatID] = h
	return h, nil
}

// Release removes the hold on seatID provided userID owns it.  It
// returns ErrNotHolder when the seat has no live hold or the hold
// belongs to someone else.
func (r *Registry) Release(seatID, userID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.holds[seatID]
	if !ok || !r.now().Before(h.ExpiresAt) || h.UserID != userID {
		return ErrNotHolder
	}
	delete(r.holds, seatID)
	return nil
}

// Get returns the live hold on seatID, if any.  Expiry is checked
// lazily: an entry past its expiry is reported as absent even when the
// sweeper has not physically removed it yet.
func (r *Registry) Get(seatID uint64) (Hold, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.holds[seatID]
	if !ok || !r.now().Before(h.ExpiresAt) {
		return Hold{}, false
	}
	return h, true
}

// HeldByOther reports whether a live hold by a different user exists
// for seatID.  It is the cheap pre-check handlers run before touching
// the database; PlaceHold re-validates under the same lock that admits
// the hold.
func (r *Registry) HeldByOther(seatID, userID uint64) bool {
	h, ok := r.Get(seatID)
	return ok && h.UserID != userID
}

// ActiveForShowtime returns a snapshot of every live hold belonging to
// the given showtime, keyed by seat ID.  The availability resolver
// uses it to annotate a whole seat map with a single lock acquisition.
func (r *Registry) ActiveForShowtime(showtimeID uint64) map[uint64]Hold {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	out := make(map[uint64]Hold)
	for sid, h := range r.holds {
		if h.ShowtimeID == showtimeID && now.Before(h.ExpiresAt) {
			out[sid] = h
		}
	}
	return out
}

// Complete removes the hold on seatID after a successful booking
// commit.  Unlike Release it does not care who owns the entry: the
// commit protocol has already validated ownership, and by this point
// the seat is persistently booked so any hold on it is dead weight.
func (r *Registry) Complete(seatID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.holds, seatID)
}

// EvictExpired removes every entry whose expiry has passed and returns
// how many were dropped.  Correctness never depends on this running:
// every read path checks expiry lazily.  The sweeper calls it on an
// interval purely to reclaim memory.
func (r *Registry) EvictExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for sid, h := range r.holds {
		if !now.Before(h.ExpiresAt) {
			delete(r.holds, sid)
			n++
		}
	}
	return n
}

// Len reports the number of entries currently stored, expired or not.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.holds)
}
