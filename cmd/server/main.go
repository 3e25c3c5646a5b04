package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/pharmaops/pharmacy-signoff/internal/config"
	"github.com/pharmaops/pharmacy-signoff/internal/database"
	"github.com/pharmaops/pharmacy-signoff/internal/handler"
	"github.com/pharmaops/pharmacy-signoff/internal/middleware"
	"github.com/pharmaops/pharmacy-signoff/internal/notify"
	"github.com/pharmaops/pharmacy-signoff/internal/repository"
	"github.com/pharmaops/pharmacy-signoff/internal/router"
	queue_publisher "github.com/pharmaops/pharmacy-signoff/internal/service"
)

func main() {
	_ = godotenv.Load() // absent .env is fine; real deployments set env directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("database migrate failed: %v", err)
	}
	cancel()

	// Redis is optional; without it, rate limiting and the history cache
	// become passthroughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, rate limiting and response cache disabled")
	}

	accounts := repository.NewAccountRepo(db)
	signoffs := repository.NewSignoffRepo(db)

	auth := handler.NewAuthHandler(cfg, accounts)
	sign := handler.NewSignoffHandler(cfg, signoffs, notify.NewMailer(cfg), queue_publisher.PublishSignoffRecorded)
	hist := handler.NewHistoryHandler(signoffs)

	e := echo.New()
	e.HideBanner = true

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e, cfg.StaticDir)
	router.RegisterAuth(e, auth, limiter)
	router.RegisterAPI(e, sign, hist, cfg.SessionSecret, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
