package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cineseat/movie-hall-booking/internal/booking"
	"github.com/cineseat/movie-hall-booking/internal/config"
	"github.com/cineseat/movie-hall-booking/internal/database"
	"github.com/cineseat/movie-hall-booking/internal/handler"
	"github.com/cineseat/movie-hall-booking/internal/middleware"
	"github.com/cineseat/movie-hall-booking/internal/queue"
	"github.com/cineseat/movie-hall-booking/internal/repository"
	"github.com/cineseat/movie-hall-booking/internal/router"
	queue_publisher "github.com/cineseat/movie-hall-booking/internal/service"
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

	// Redis is best effort. When it is unreachable the rate limiter and
	// the response cache degrade to pass-through.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	movies := repository.NewMovieRepo(db)
	seats := repository.NewSeatRepo(db)
	store := repository.NewBookingStore(db, seats)

	bookings := booking.NewService(store, queue_publisher.New())

	authH := handler.NewAuthHandler(cfg, users, tokens)
	movieH := handler.NewMovieHandler(movies, seats)
	allocH := handler.NewAllocationHandler(bookings)
	bookH := handler.NewBookingHandler(bookings, movies)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	var cache echo.MiddlewareFunc
	if rdb != nil {
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, movieH, cache)
	router.RegisterBooking(e, allocH, bookH, cfg.JWTSecret)
	router.RegisterAdmin(e, movieH, bookH, cfg.JWTSecret)

	// The consumer keeps its own connection and reconnects on failure.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
