// Package booking implements the seat availability resolver and the
// booking commit protocol on top of the hold registry and the
// persistent catalog store.
package booking

import "errors"

// ErrSeatUnavailable is returned when the seat does not exist, belongs
// to a different showtime, or is already booked.  User-visible as
// "seat no longer available, please reselect".
var ErrSeatUnavailable = errors.New("seat unavailable")

// ErrNoValidHold is returned when a booking is attempted without a
// live, self-owned hold on the seat.  It covers never-held, held by
// someone else, and expired alike.
var ErrNoValidHold = errors.New("no valid hold on seat")

// ErrStorageFailure is returned when persistence fails during the
// commit.  The caller's hold is left intact so a retry within the
// remaining hold window can succeed; handlers surface it as a
// retryable 503.
var ErrStorageFailure = errors.New("storage failure, retry")
