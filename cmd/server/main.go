package main // Entry point package

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/huyle/cinema-booking/internal/booking"
	"github.com/huyle/cinema-booking/internal/config"
	"github.com/huyle/cinema-booking/internal/database"
	"github.com/huyle/cinema-booking/internal/handler"
	"github.com/huyle/cinema-booking/internal/hold"
	"github.com/huyle/cinema-booking/internal/queue"
	"github.com/huyle/cinema-booking/internal/repository"
	"github.com/huyle/cinema-booking/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables the response cache and
	// the rate limiter but the service stays fully functional.
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	// Repositories and the in-memory hold registry.
	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	showtimes := repository.NewShowtimeRepo(db)
	seats := repository.NewSeatRepo(db)
	bookings := repository.NewBookingRepo(db)
	store := repository.NewStore(db, seats, bookings)

	registry := hold.NewRegistry(cfg.HoldDuration)
	svc := booking.NewService(store, registry)

	// Background hold sweeper.  Lazy expiry keeps reads correct even
	// without it; the sweeper just bounds memory on abandoned holds.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper := hold.NewSweeper(registry, cfg.SweepInterval)
	go sweeper.Start(ctx)

	// Booking log consumer; runs its own reconnect loop forever.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		Auth:     handler.NewAuthHandler(cfg, users),
		Catalog:  handler.NewCatalogHandler(movies, showtimes),
		Booking:  handler.NewBookingHandler(svc, bookings, showtimes, movies, seats),
		Movies:   handler.NewAdminMovieHandler(movies),
		Shows:    handler.NewAdminShowtimeHandler(showtimes, movies, seats),
		Secret:   cfg.JWTSecret,
		Redis:    rdb,
		CacheCfg: config.LoadCacheConfig(),
		RateCfg:  config.LoadRateLimitConfig(),
	})

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	// Graceful shutdown: stop accepting requests, then stop the sweeper.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	sweeper.Stop()
}
