package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "workshop-backend/internal/api/http"
	"workshop-backend/internal/config"
	"workshop-backend/internal/logger"
	"workshop-backend/internal/pricing"
	"workshop-backend/internal/repository/postgres"
	"workshop-backend/internal/service"
	"workshop-backend/internal/storage"
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
	logger.Info("Starting Workshop Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Initialize Document Storage
	docStore, err := storage.NewLocalStore(cfg.Storage.DocumentDir)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}
	logger.Info("Using local document storage", "document_dir", cfg.Storage.DocumentDir)

	// Initialize Services
	rateCache := pricing.NewCache(cfg.PriceCacheTTL(), service.NewRateTableLoader(store.ServiceRateRepository))
	pricingSvc := service.NewPricingService(store.ProductRepository, store.ServiceRateRepository, rateCache)
	productSvc := service.NewProductService(store.ProductRepository, store.ServiceRateRepository, pricingSvc)
	artisanSvc := service.NewArtisanService(store.ArtisanRepository)
	jobSvc := service.NewJobService(
		store.JobRepository,
		store.ProductRepository,
		store.ArtisanRepository,
		store.InventoryRepository,
		pricingSvc,
	)
	inventorySvc := service.NewInventoryService(store.InventoryRepository)
	customerSvc := service.NewCustomerService(store.CustomerRepository)
	orderSvc := service.NewOrderService(
		store.OrderRepository,
		store.CustomerRepository,
		store.ProductRepository,
	)
	payslipSvc := service.NewPayslipService(store.PayslipRepository, store.ArtisanRepository, docStore)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Pricing:   pricingSvc,
		Products:  productSvc,
		Artisans:  artisanSvc,
		Jobs:      jobSvc,
		Inventory: inventorySvc,
		Customers: customerSvc,
		Orders:    orderSvc,
		Payslips:  payslipSvc,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
