package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/planora/event-booking-api/internal/config"
	"github.com/planora/event-booking-api/internal/database"
	"github.com/planora/event-booking-api/internal/handler"
	"github.com/planora/event-booking-api/internal/middleware"
	"github.com/planora/event-booking-api/internal/queue"
	"github.com/planora/event-booking-api/internal/repository"
	"github.com/planora/event-booking-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	eventRepo := repository.NewEventRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	userHandler := handler.NewUserHandler(cfg, userRepo)
	eventHandler := handler.NewEventHandler(eventRepo)
	bookingHandler := handler.NewBookingHandler(bookingRepo, eventRepo)

	e := echo.New()

	// Redis is optional: nil client disables both limiter and cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and catalog cache disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	catalogCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, userRepo)
	router.RegisterUsers(e, userHandler, cfg.JWTSecret, userRepo)
	router.RegisterEvents(e, eventHandler, cfg.JWTSecret, userRepo, catalogCache)
	router.RegisterBookings(e, bookingHandler, cfg.JWTSecret, userRepo)

	// Background consumer mirrors bookings into logs/booking.log; it
	// reconnects forever and never takes the API down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
