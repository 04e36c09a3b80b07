package model

// Persistent seat statuses.  Only two values ever reach the database:
// a seat is either free to sell or definitively sold.  The transient
// "held" state lives exclusively in the in-memory hold registry and is
// merged in at read time.
const (
	SeatStatusAvailable = "available" // seat can be held and booked
	SeatStatusBooked    = "booked"    // seat is sold; terminal state
)

// Seat describes one seat of a showtime.  Seats are generated in bulk
// by administrators (e.g. A1..A10) and their status only ever moves
// from available to booked, during the booking commit.
//
// Fields:
//  ID         – primary key identifier.
//  ShowtimeID – showtime this seat belongs to.
//  SeatNumber – label shown to customers (e.g. "A1").
//  Status     – persistent status, available or booked.
type Seat struct {
	ID         uint64 // seats.id
	ShowtimeID uint64 // seats.showtime_id
	SeatNumber string // seats.seat_number
	Status     string // seats.status
}
