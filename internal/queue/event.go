// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully committed.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	ShowtimeID  uint64 `json:"showtime_id"`
	MovieTitle  string `json:"movie_title"`
	Theater     string `json:"theater"`
	ShowDate    string `json:"show_date"`
	ShowTime    string `json:"show_time"`
	SeatNumber  string `json:"seat_number"`
	QRCode      string `json:"qr_code"`
	ConfirmedAt string `json:"confirmed_at"`
}
