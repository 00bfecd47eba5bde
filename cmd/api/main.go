package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yogeshtekawade0602/bicycle-project/internal/adapters/cache"
	"github.com/yogeshtekawade0602/bicycle-project/internal/adapters/database"
	"github.com/yogeshtekawade0602/bicycle-project/internal/api/flash"
	"github.com/yogeshtekawade0602/bicycle-project/internal/api/handlers"
	"github.com/yogeshtekawade0602/bicycle-project/internal/api/routes"
	"github.com/yogeshtekawade0602/bicycle-project/internal/application/services"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/providers"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/repositories"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/clients/postgres"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/clients/redis"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/observability"
	"github.com/yogeshtekawade0602/bicycle-project/pkg/config"
)

func main() {

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize adapters

	baseResidentAdapter := database.NewResidentAdapter(pgClient, metrics)

	// Wrap with caching if Redis is available (for read performance optimization)
	var residentAdapter repositories.ResidentRepository
	if cacheProvider != nil {
		residentAdapter = database.NewCachedResidentAdapter(baseResidentAdapter, cacheProvider, metrics)
		log.Println("Resident adapter wrapped with caching layer")
	} else {
		residentAdapter = baseResidentAdapter
		log.Println("Resident adapter running without cache (Redis unavailable)")
	}

	rentalAdapter := database.NewRentalAdapter(pgClient, metrics)
	bicycleAdapter := database.NewBicycleAdapter(pgClient, metrics)

	// Initialize services

	residentService := services.NewResidentService(residentAdapter, rentalAdapter)
	rentalService := services.NewRentalService(rentalAdapter, bicycleAdapter)

	// Initialize handlers

	flashCodec := flash.NewCodec(cfg.Session.Secret)

	dwellerHandler := handlers.NewDwellerHandler(residentService, flashCodec)
	rentalHandler := handlers.NewRentalHandler(rentalService, flashCodec)
	healthHandler := handlers.NewHealthHandler(pgClient)

	// Set up router

	router := routes.NewRouter(
		dwellerHandler,
		rentalHandler,
		healthHandler,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
