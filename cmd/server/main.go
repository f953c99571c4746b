package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-backoffice/internal/booking"
	"github.com/iliyamo/rental-backoffice/internal/config"
	"github.com/iliyamo/rental-backoffice/internal/database"
	"github.com/iliyamo/rental-backoffice/internal/handler"
	"github.com/iliyamo/rental-backoffice/internal/middleware"
	"github.com/iliyamo/rental-backoffice/internal/queue"
	"github.com/iliyamo/rental-backoffice/internal/repository"
	"github.com/iliyamo/rental-backoffice/internal/router"
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

	reservationRepo := repository.NewReservationRepo(db)
	departmentRepo := repository.NewDepartmentRepo(db)
	platformRepo := repository.NewPlatformRepo(db)
	costRepo := repository.NewCostRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	blacklistRepo := repository.NewBlacklistRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	norm := booking.Normalizer{USDToARS: cfg.USDToARS}

	h := router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, userRepo, tokenRepo),
		Reservations: handler.NewReservationHandler(reservationRepo, departmentRepo, platformRepo, norm, cfg.QueueEnabled),
		Departments:  handler.NewDepartmentHandler(departmentRepo, inventoryRepo),
		Costs:        handler.NewCostHandler(costRepo, reservationRepo, departmentRepo),
		Platforms:    handler.NewPlatformHandler(platformRepo),
		Users:        handler.NewUserHandler(cfg, userRepo),
		Blacklist:    handler.NewBlacklistHandler(blacklistRepo),
	}

	e := echo.New()

	// Redis-backed rate limiting and response caching degrade to no-ops when
	// Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAPI(e, h, cfg.JWTSecret)

	if cfg.QueueEnabled {
		go func() {
			if err := queue.StartReservationConsumer(); err != nil {
				log.Printf("reservation consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
