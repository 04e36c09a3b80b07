package model

// Movie describes a film in the catalog.  Movies are created and
// maintained by administrators and browsed by everyone else.  The
// metadata fields (director, actors, trailer) are free-form text and
// may be empty for older entries.
//
// Fields:
//  ID         – primary key identifier.
//  Title      – display title; the only required field.
//  Genre      – comma separated genre list.
//  PosterURL  – URL of the poster image.
//  Synopsis   – short plot description.
//  Duration   – running time in minutes.
//  Director   – director name(s).
//  Actors     – main cast, comma separated.
//  TrailerURL – URL of the trailer video.
type Movie struct {
	ID         uint64 // movies.id
	Title      string // movies.title
	Genre      string // movies.genre
	PosterURL  string // movies.poster_url
	Synopsis   string // movies.synopsis
	Duration   uint32 // movies.duration (minutes)
	Director   string // movies.director
	Actors     string // movies.actors
	TrailerURL string // movies.trailer_url
}
