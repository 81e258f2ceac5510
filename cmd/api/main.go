// Sleep Science API
//
// REST API for sleep need baselines, sleep debt, daily targets, energy
// curves and chronotype classification.
//
//	@title			Sleep Science API
//	@version		1.0
//	@description	Ingest daily sleep history from wearables and compute MCTQ baselines, rolling sleep debt, daily sleep-need targets, two-process energy curves and chronotype classifications.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			sleep-history
//	@tag.description	Raw sleep history ingestion and listing
//
//	@tag.name			sleep-science
//	@tag.description	Baseline, debt, daily need, energy curve, chronotype and sufficiency endpoints
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/somnolab/sleep-science/internal/api"
	"github.com/somnolab/sleep-science/internal/api/handler"
	"github.com/somnolab/sleep-science/internal/config"
	"github.com/somnolab/sleep-science/internal/domain"
	"github.com/somnolab/sleep-science/internal/repository"
	"github.com/somnolab/sleep-science/internal/seed"
	"github.com/somnolab/sleep-science/internal/service"
	"github.com/somnolab/sleep-science/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize tracing (no-op when no OTLP endpoint is configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "sleep-science-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Tracer shutdown error: %v", err)
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	err = db.AutoMigrate(
		&domain.User{},
		&domain.SleepHistoryEntry{},
		&domain.SleepProfile{},
		&domain.SleepNeedCalculation{},
		&domain.DayClassification{},
		&domain.DailySleepNeed{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	historyRepo := repository.NewSleepHistoryRepository(db)
	profileRepo := repository.NewSleepProfileRepository(db)

	// Initialize services
	params := service.DefaultParams()
	userService := service.NewUserService(userRepo)
	historyService := service.NewSleepHistoryService(historyRepo, userRepo)
	baselineService := service.NewBaselineService(historyRepo, profileRepo, userRepo, params)
	debtService := service.NewDebtService(historyRepo, profileRepo, userRepo, params)
	dailyNeedService := service.NewDailyNeedService(historyRepo, profileRepo, userRepo, debtService, params)
	curveService := service.NewEnergyCurveService(historyRepo, profileRepo, userRepo, debtService, params)
	chronotypeService := service.NewChronotypeService(historyRepo, userRepo, params)
	sufficiencyService := service.NewSufficiencyService(historyRepo, userRepo, params)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	historyHandler := handler.NewSleepHistoryHandler(historyService)
	scienceHandler := handler.NewSleepScienceHandler(
		baselineService,
		debtService,
		dailyNeedService,
		curveService,
		chronotypeService,
		sufficiencyService,
	)

	// Setup router
	router := api.NewRouter(userHandler, historyHandler, scienceHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
