package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linklift/linklift/internal/cache"
	"github.com/linklift/linklift/internal/config"
	"github.com/linklift/linklift/internal/database"
	"github.com/linklift/linklift/internal/handler"
	"github.com/linklift/linklift/internal/middleware"
	"github.com/linklift/linklift/internal/repository"
	"github.com/linklift/linklift/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize New Relic (optional)
	var nrApp *newrelic.Application
	if cfg.NewRelicEnabled && cfg.NewRelicLicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelicAppName),
			newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
			newrelic.ConfigInfoLogger(os.Stdout),
		)
		if err != nil {
			log.Printf("Warning: Failed to initialize New Relic: %v", err)
		} else if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		} else {
			log.Println("New Relic connected")
		}
	}

	// Initialize PostgreSQL
	db, err := database.NewPostgres(
		cfg.DatabaseURL,
		cfg.DBMaxConnections,
		cfg.DBMaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis
	redis, err := database.NewRedis(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()
	log.Println("Connected to Redis")

	// Initialize city catalog
	cityCatalog := cache.NewCityCatalog(redis.Client)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	rideRepo := repository.NewRideRepository(db.DB)
	requestRepo := repository.NewRequestRepository(db.DB)
	messageRepo := repository.NewMessageRepository(db.DB)

	// Initialize services
	lockWindow := time.Duration(cfg.LockWindowMinutes) * time.Minute
	rideService := service.NewRideService(db.DB, rideRepo, requestRepo, userRepo, cityCatalog)
	requestService := service.NewRequestService(db.DB, rideRepo, requestRepo, userRepo, lockWindow)
	searchService := service.NewSearchService(rideRepo, requestRepo, userRepo)
	chatService := service.NewChatService(rideRepo, requestRepo, userRepo, messageRepo)
	alertService := service.NewAlertService(rideRepo, requestRepo, redis.Client)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	rideHandler := handler.NewRideHandler(rideService, searchService)
	requestHandler := handler.NewRequestHandler(requestService)
	chatHandler := handler.NewChatHandler(chatService, alertService)
	cityHandler := handler.NewCityHandler(cityCatalog)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-User-ID"},
		ExposedHeaders:   []string{"Link", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// New Relic middleware
	if nrApp != nil {
		r.Use(middleware.NewRelicMiddleware(nrApp))
	}

	// Rate limiter
	rateLimiter := middleware.NewRateLimiter(redis.Client, cfg.RateLimitPerMinute, time.Minute)
	r.Use(rateLimiter.Handler)

	// Idempotency middleware
	idempotencyMw := middleware.NewIdempotencyMiddleware(redis.Client)
	r.Use(idempotencyMw.Handler)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := db.Health(ctx); err != nil {
			http.Error(w, "database unhealthy", http.StatusServiceUnavailable)
			return
		}
		if err := redis.Health(ctx); err != nil {
			http.Error(w, "redis unhealthy", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","services":{"database":"up","redis":"up"}}`))
	})

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		userHandler.RegisterRoutes(r)
		cityHandler.RegisterRoutes(r)

		// Everything below needs a resolved caller identity
		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity)
			rideHandler.RegisterRoutes(r)
			requestHandler.RegisterRoutes(r)
			chatHandler.RegisterRoutes(r)
		})
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Println("API endpoints:")
	log.Println("  POST   /v1/users                  - Create member")
	log.Println("  POST   /v1/rides                  - Publish ride")
	log.Println("  POST   /v1/rides/search           - Search rides")
	log.Println("  GET    /v1/rides/{id}             - Ride details")
	log.Println("  DELETE /v1/rides/{id}             - Cancel ride")
	log.Println("  GET    /v1/rides/history          - Upcoming/past buckets")
	log.Println("  POST   /v1/requests               - Request seats")
	log.Println("  PUT    /v1/requests/{id}/approve  - Approve request")
	log.Println("  PUT    /v1/requests/{id}/reject   - Reject request")
	log.Println("  PUT    /v1/requests/{id}/remove   - Remove passenger")
	log.Println("  DELETE /v1/requests/{id}          - Cancel request")
	log.Println("  POST   /v1/rides/{id}/sos         - Emergency alert")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped gracefully")
}
