// Package hold implements the in-memory seat hold registry: the
// authoritative record of who currently intends to book which seat.
// Holds are short-lived, exclusive and never persisted; a process
// restart simply releases everything, which is acceptable because the
// durable booking state lives in the database.
package hold

import (
	"errors"
	"time"
)

// ErrSeatHeldByOther is returned when another user has a live hold on
// the requested seat.  Handlers should translate this into an HTTP 400
// response telling the customer to pick a different seat or wait.
var ErrSeatHeldByOther = errors.New("seat is held by another user")

// ErrNotHolder is returned when a release is attempted by someone who
// does not own a live hold on the seat, including when no hold exists
// at all.  It is deliberately not escalated beyond a 400 response.
var ErrNotHolder = errors.New("seat is not held by this user")

// Hold is a time-bounded claim by one user on one seat.  At most one
// live Hold exists per seat at any instant, and a given user owns at
// most one live Hold per showtime.
//
// Fields:
//  UserID     – user who placed the hold.
//  ShowtimeID – showtime the seat belongs to.
//  ExpiresAt  – instant after which the hold is treated as absent.
type Hold struct {
	UserID     uint64
	ShowtimeID uint64
	ExpiresAt  time.Time
}

// Remaining returns the whole seconds left on the hold at the given
// instant, rounded up.  It returns 0 for an expired hold.
func (h Hold) Remaining(now time.Time) int {
	d := h.ExpiresAt.Sub(now)
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
