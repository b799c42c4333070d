package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "gearcheck-backend/internal/api/http"
	"gearcheck-backend/internal/config"
	"gearcheck-backend/internal/logger"
	"gearcheck-backend/internal/repository/postgres"
	"gearcheck-backend/internal/security"
	"gearcheck-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GearCheck Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Services
	rates := cfg.Engine.PenaltyRates
	templateSvc := service.NewTemplateService(store.TemplateRepository, store.EventLogRepository)
	returnSvc := service.NewReturnService(store.ReturnRepository, store.LoanRepository, rates)
	assessmentSvc := service.NewAssessmentService(
		store.AssessmentRepository,
		store.ReturnRepository,
		store.LoanRepository,
		store.TemplateRepository,
		store.DamageRepository,
		store.EventLogRepository,
		rates,
	)
	damageSvc := service.NewDamageService(
		store.DamageRepository,
		store.ReturnRepository,
		store.ReputationRepository,
	)
	reputationSvc := service.NewReputationService(store.ReputationRepository)
	analyticsSvc := service.NewAnalyticsService(store.EventLogRepository, store.LoanRepository, rates)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Templates:   templateSvc,
		Returns:     returnSvc,
		Assessments: assessmentSvc,
		Damage:      damageSvc,
		Reputation:  reputationSvc,
		Analytics:   analyticsSvc,
	}, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
