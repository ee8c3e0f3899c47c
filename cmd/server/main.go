package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/playground-booking/internal/config"     // Internal config loader
	"github.com/iliyamo/playground-booking/internal/database"   // MySQL connection helper
	"github.com/iliyamo/playground-booking/internal/handler"    // HTTP handlers
	"github.com/iliyamo/playground-booking/internal/middleware" // Rate limiting and caching middleware
	"github.com/iliyamo/playground-booking/internal/queue"      // Booking event consumer
	"github.com/iliyamo/playground-booking/internal/repository" // Data access layer
	"github.com/iliyamo/playground-booking/internal/router"     // Internal router setup
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs rate limiting, response caching and draft staging.  A
	// nil client disables all three rather than failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting, caching and drafts disabled")
	}

	// Repositories.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)
	facilityRepo := repository.NewFacilityRepo(db)
	timeSlotRepo := repository.NewTimeSlotRepo(db)
	playSlotRepo := repository.NewPlaygroundSlotRepo(db)
	passRepo := repository.NewPassRepo(db)
	purchaseRepo := repository.NewPassPurchaseRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	draftRepo := repository.NewDraftRepo(rdb)

	// Handlers.
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	ownerHandler := handler.NewOwnerHandler(cfg, facilityRepo, timeSlotRepo, playSlotRepo, passRepo, bookingRepo, draftRepo, catalogRepo, purchaseRepo)
	customerHandler := handler.NewCustomerHandler(cfg, facilityRepo, timeSlotRepo, bookingRepo, passRepo, purchaseRepo)
	adminHandler := handler.NewAdminHandler(facilityRepo, bookingRepo)
	publicHandler := handler.NewPublicHandler(catalogRepo, facilityRepo, timeSlotRepo, playSlotRepo, passRepo, bookingRepo)
	pricingHandler := handler.NewPricingHandler(facilityRepo, passRepo)

	e := echo.New() // Create Echo instance
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e) // Health check
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, pricingHandler)
	router.RegisterCustomer(e, customerHandler, cfg.JWTSecret)
	router.RegisterOwner(e, ownerHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Booking status notifications are consumed out of process; the
	// consumer reconnects on its own and never blocks startup.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
