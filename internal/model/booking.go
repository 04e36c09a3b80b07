package model

import "time"

// Booking is a confirmed, durable ticket purchase.  A booking is
// created exactly once from a live seat hold and is never mutated
// afterwards; there is no cancellation flow.  The QR code is an opaque
// unique string presented at check-in.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – user who bought the ticket.
//  ShowtimeID – showtime of the ticket.
//  SeatID     – the booked seat.
//  Status     – always "confirmed" once created.
//  QRCode     – opaque unique check-in token.
//  CreatedAt  – when the booking was committed.
type Booking struct {
	ID         uint64    // bookings.id
	UserID     uint64    // bookings.user_id
	ShowtimeID uint64    // bookings.showtime_id
	SeatID     uint64    // bookings.seat_id
	Status     string    // bookings.status
	QRCode     string    // bookings.qr_code
	CreatedAt  time.Time // bookings.created_at
}

// BookingStatusConfirmed is the only status this system ever writes.
const BookingStatusConfirmed = "confirmed"
