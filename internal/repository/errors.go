// Package repository defines error types that are reused across
// multiple repositories.  These sentinel values allow higher layers
// such as handlers and the booking service to distinguish between
// different failure scenarios without string matching, e.g. a missing
// movie versus a genuine database failure.
package repository

import "errors"

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// ErrShowtimeNotFound is returned when a showtime lookup yields no rows.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrSeatNotAvailable is returned when a seat status transition finds
// the seat already booked.  The booking commit uses it to detect a
// lost race without inspecting rows-affected counts at the call site.
var ErrSeatNotAvailable = errors.New("seat not available")

// ErrEmailExists is returned when registration collides with an
// existing email address.
var ErrEmailExists = errors.New("email already exists")
