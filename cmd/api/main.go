package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/printlab/quote-api/config"
	"github.com/printlab/quote-api/internal/archive"
	"github.com/printlab/quote-api/internal/handlers"
	"github.com/printlab/quote-api/internal/mailer"
	"github.com/printlab/quote-api/internal/middleware"
	"github.com/printlab/quote-api/internal/repository"
	"github.com/printlab/quote-api/internal/services"
	"github.com/printlab/quote-api/pkg/db"
	"github.com/printlab/quote-api/pkg/logger"
	"github.com/printlab/quote-api/pkg/metrics"
	"github.com/printlab/quote-api/pkg/profiling"
	"github.com/printlab/quote-api/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting quote API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceVersion,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceVersion,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Initialize metrics
	metrics.Init()
	metrics.RecordInfrastructureMetrics()

	// Initialize the submission store
	var store repository.SubmissionStore
	var storePing func(ctx context.Context) error

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, poolErr := db.NewPool(context.Background(), db.PoolConfig{
			URL:      cfg.Store.DatabaseURL,
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
		if poolErr != nil {
			logger.Fatal("Failed to initialize database connection pool", zap.Error(poolErr))
		}
		defer pool.Close()

		store = repository.NewPostgresStore(pool)
		storePing = pool.Ping
		logger.Info("Using postgres submission store")
	default:
		fileStore, storeErr := repository.NewFileStore(cfg.Store.FilePath)
		if storeErr != nil {
			logger.Fatal("Failed to initialize file submission store", zap.Error(storeErr))
		}
		store = fileStore
		logger.Info("Using file submission store", zap.String("path", cfg.Store.FilePath))
	}

	// Initialize the notification relay (optional)
	var relay services.NotificationRelay
	if cfg.Mail.Enabled() {
		m, mailErr := mailer.New(cfg.Mail)
		if mailErr != nil {
			logger.Fatal("Failed to initialize mail relay", zap.Error(mailErr))
		}
		relay = m
	} else {
		logger.Warn("Mail relay disabled: EMAIL_USER/EMAIL_PASS not configured")
	}

	// Initialize the archive uploader (optional)
	var archiver services.SnapshotArchiver
	if cfg.Archive.AccessKeyID != "" && cfg.Archive.SecretAccessKey != "" {
		uploader, archiveErr := archive.NewUploader(cfg.Archive)
		if archiveErr != nil {
			logger.Fatal("Failed to initialize archive uploader", zap.Error(archiveErr))
		}
		archiver = uploader
	}

	// Initialize services and handlers
	quoteService := services.NewQuoteService(store, relay, archiver)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	statsHandler := handlers.NewStatsHandler(quoteService)
	healthHandler := handlers.NewHealthHandler(storePing)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - SECURITY: Only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters: a general ceiling for utility endpoints plus the
	// sliding-window submission limiter required by the form policy
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	submissionWindow := middleware.NewSubmissionWindow(
		cfg.RateLimit.SubmissionMax,
		time.Duration(cfg.RateLimit.SubmissionWindowMinutes)*time.Minute,
	)

	// API routes
	api := router.Group("/api")
	api.POST("/submit-form", submissionWindow.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), quoteHandler.SubmitForm)
	api.GET("/stats", generalRateLimiter.Middleware(), statsHandler.GetStats)
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Serve the form's static assets when a public dir is present
	if info, statErr := os.Stat(cfg.Server.PublicDir); statErr == nil && info.IsDir() {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.Server.PublicDir))))
	} else {
		router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		})
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
