package handler

import (
	"github.com/huyle/cinema-booking/internal/model"
	"github.com/huyle/cinema-booking/internal/repository"
)

// Response shapes for catalog entities.  The model structs carry no
// JSON tags on purpose; handlers own the wire format.

type movieResp struct {
	ID         uint64 `json:"id"`
	Title      string `json:"title"`
	Genre      string `json:"genre"`
	PosterURL  string `json:"poster_url"`
	Synopsis   string `json:"synopsis"`
	Duration   uint32 `json:"duration"`
	Director   string `json:"director"`
	Actors     string `json:"actors"`
	TrailerURL string `json:"trailer_url"`
}

func toMovieResp(m model.Movie) movieResp {
	return movieResp{
		ID: m.ID, Title: m.Title, Genre: m.Genre, PosterURL: m.PosterURL,
		Synopsis: m.Synopsis, Duration: m.Duration,
		Director: m.Director, Actors: m.Actors, TrailerURL: m.TrailerURL,
	}
}

func toMovieResps(ms []model.Movie) []movieResp {
	out := make([]movieResp, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMovieResp(m))
	}
	return out
}

type showtimeResp struct {
	ID         uint64 `json:"id"`
	MovieID    uint64 `json:"movie_id"`
	Theater    string `json:"theater"`
	ShowDate   string `json:"show_date"`
	ShowTime   string `json:"show_time"`
	PriceCents uint32 `json:"price_cents"`
	MovieTitle string `json:"movie_title,omitempty"`
}

func toShowtimeResp(s model.Showtime) showtimeResp {
	return showtimeResp{
		ID: s.ID, MovieID: s.MovieID, Theater: s.Theater,
		ShowDate: s.ShowDate, ShowTime: s.ShowTime, PriceCents: s.PriceCents,
	}
}

func toShowtimeResps(ss []model.Showtime) []showtimeResp {
	out := make([]showtimeResp, 0, len(ss))
	for _, s := range ss {
		out = append(out, toShowtimeResp(s))
	}
	return out
}

func toShowtimeWithMovieResps(ss []repository.ShowtimeWithMovie) []showtimeResp {
	out := make([]showtimeResp, 0, len(ss))
	for _, s := range ss {
		r := toShowtimeResp(s.Showtime)
		r.MovieTitle = s.MovieTitle
		out = append(out, r)
	}
	return out
}
