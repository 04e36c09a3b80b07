package model

// Showtime represents a single screening of a movie in a theater.
// Every showtime owns its own set of seats; deleting a showtime is an
// administrative operation and cascades to seats at the database level.
//
// Fields:
//  ID         – primary key identifier.
//  MovieID    – movie being screened.
//  Theater    – name of the screening room (e.g. "Theater 1").
//  ShowDate   – calendar date in YYYY-MM-DD form.
//  ShowTime   – start time of day in HH:MM form.
//  PriceCents – ticket price in cents for every seat of this showtime.
type Showtime struct {
	ID         uint64 // showtimes.id
	MovieID    uint64 // showtimes.movie_id
	Theater    string // showtimes.theater
	ShowDate   string // showtimes.show_date
	ShowTime   string // showtimes.show_time
	PriceCents uint32 // showtimes.price_cents
}
