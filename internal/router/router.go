package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing
	"github.com/redis/go-redis/v9"

	"github.com/huyle/cinema-booking/internal/config"
	"github.com/huyle/cinema-booking/internal/handler"
	"github.com/huyle/cinema-booking/internal/middleware"
	"github.com/huyle/cinema-booking/internal/model"
)

// Deps bundles everything route registration needs: the handlers, the
// JWT secret for the auth middleware, and the optional Redis-backed
// cache and rate-limit middleware configuration.  A nil Redis client
// disables both Redis features.
type Deps struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Booking  *handler.BookingHandler
	Movies   *handler.AdminMovieHandler
	Shows    *handler.AdminShowtimeHandler
	Secret   string
	Redis    *redis.Client
	CacheCfg config.CacheConfig
	RateCfg  config.RateLimitConfig
}

// Register wires every route of the service onto the Echo instance.
//
// Route groups:
//   - /healthz — unauthenticated liveness probe.
//   - /v1 public catalog — movies and showtimes, optionally cached.
//   - /v1/showtimes/:id/seats — seat map; token optional so anonymous
//     visitors can browse availability.
//   - /v1 customer — hold/release/book/my-bookings behind JWTAuth.
//   - /v1/auth — register and login, rate limited when Redis is up.
//   - /v1/admin — catalog management behind JWTAuth + ADMIN role.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	var rateLimit echo.MiddlewareFunc
	if d.Redis != nil && d.RateCfg.Enabled {
		rateLimit = middleware.NewTokenBucket(d.RateCfg, d.Redis)
	}
	var cached echo.MiddlewareFunc
	if d.Redis != nil && d.CacheCfg.Enabled {
		cached = middleware.NewRedisCache(d.CacheCfg, d.Redis)
	}

	// Public catalog.  Read-only and identical for every viewer, so the
	// Redis response cache applies here and nowhere else.
	pub := e.Group("/v1")
	if cached != nil {
		pub.Use(cached)
	}
	pub.GET("/movies", d.Catalog.ListMovies)
	pub.GET("/movies/:id", d.Catalog.GetMovie)
	pub.GET("/movies/:id/showtimes", d.Catalog.ListShowtimes)

	// The seat map is per-viewer (held-by-me flags), so it must bypass
	// the shared cache.  OptionalJWTAuth fills in the identity when a
	// token is present and stays silent when it is not.
	e.GET("/v1/showtimes/:id/seats", d.Booking.Seats, middleware.OptionalJWTAuth(d.Secret))

	// Auth endpoints.  These are the brute-force target, so the token
	// bucket goes here when Redis is available.
	auth := e.Group("/v1/auth")
	if rateLimit != nil {
		auth.Use(rateLimit)
	}
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)

	// Customer endpoints: everything that mutates holds or bookings
	// requires a valid access token.  The token bucket also covers this
	// group so a scripted client cannot hammer /hold-seat.
	customer := e.Group("/v1")
	customer.Use(middleware.JWTAuth(d.Secret))
	if rateLimit != nil {
		customer.Use(rateLimit)
	}
	customer.GET("/me", d.Auth.Me)
	customer.POST("/hold-seat", d.Booking.HoldSeat)
	customer.POST("/release-seat", d.Booking.ReleaseSeat)
	customer.POST("/book", d.Booking.Book)
	customer.GET("/my-bookings", d.Booking.MyBookings)

	// Admin endpoints: token plus ADMIN role.
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(d.Secret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("/movies", d.Movies.List)
	admin.POST("/movies", d.Movies.Create)
	admin.PUT("/movies/:id", d.Movies.Update)
	admin.DELETE("/movies/:id", d.Movies.Delete)
	admin.GET("/showtimes", d.Shows.List)
	admin.POST("/showtimes", d.Shows.Create)
	admin.DELETE("/showtimes/:id", d.Shows.Delete)
	admin.POST("/seats", d.Shows.GenerateSeats)
}
