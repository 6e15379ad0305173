package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	booksapp "github.com/goldfin/backend/internal/application/books"
	lendingapp "github.com/goldfin/backend/internal/application/lending"
	orgapp "github.com/goldfin/backend/internal/application/org"
	reportapp "github.com/goldfin/backend/internal/application/report"
	"github.com/goldfin/backend/internal/infrastructure/cache"
	"github.com/goldfin/backend/internal/infrastructure/config"
	"github.com/goldfin/backend/internal/infrastructure/logger"
	"github.com/goldfin/backend/internal/infrastructure/notification"
	"github.com/goldfin/backend/internal/infrastructure/persistence"
	"github.com/goldfin/backend/internal/infrastructure/scheduler"
	"github.com/goldfin/backend/internal/infrastructure/storage"
	"github.com/goldfin/backend/internal/interfaces/http/handler"
	"github.com/goldfin/backend/internal/interfaces/http/middleware"
	"github.com/goldfin/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			GoldFin Backend API
//	@version		1.0
//	@description	Gold loan back office API - multi-company ledger, lifecycle and reporting engine

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting GoldFin Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	schemeRepo := persistence.NewGormSchemeRepository(db.DB)
	penaltyRepo := persistence.NewGormPenaltyRepository(db.DB)
	loanRepo := persistence.NewGormLoanRepository(db.DB)
	otherLoanRepo := persistence.NewGormOtherLoanRepository(db.DB)
	sequenceRepo := persistence.NewGormSequenceRepository(db.DB)
	partyRepo := persistence.NewGormPartyRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	incomeRepo := persistence.NewGormOtherIncomeRepository(db.DB)
	chargeRepo := persistence.NewGormChargeRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)

	// Object storage for logos, avatars and collateral photos. Falls back
	// to the local stub when no bucket is configured.
	var objectStorage orgapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Warn("Could not verify storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage configured", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("No storage bucket configured, uploads will use the in-memory stub")
	}

	// Report cache. Reports fall back to computing on every request when
	// Redis is disabled.
	var reportCache reportapp.Cache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisReportCache(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		reportCache = redisCache
		log.Info("Report cache enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	// Customer notifications (best-effort email / WhatsApp)
	var notifier lendingapp.Notifier = lendingapp.NopNotifier{}
	if cfg.Notification.EmailEnabled || cfg.Notification.WhatsAppEnabled {
		notifier = notification.NewCustomerNotifier(cfg.Notification, log)
		log.Info("Customer notifications enabled",
			zap.Bool("email", cfg.Notification.EmailEnabled),
			zap.Bool("whatsapp", cfg.Notification.WhatsAppEnabled),
		)
	}

	// Initialize application services
	companyService := orgapp.NewCompanyService(companyRepo, objectStorage, log)
	branchService := orgapp.NewBranchService(branchRepo, companyRepo, sequenceRepo, log)
	customerService := orgapp.NewCustomerService(customerRepo, branchRepo, sequenceRepo, objectStorage, log)
	schemeService := orgapp.NewSchemeService(schemeRepo, penaltyRepo, companyRepo, log)
	loanService := lendingapp.NewLoanService(loanRepo, customerRepo, schemeRepo, penaltyRepo, notifier, log)
	otherLoanService := lendingapp.NewOtherLoanService(otherLoanRepo, loanRepo, log)
	booksService := booksapp.NewService(partyRepo, expenseRepo, incomeRepo, chargeRepo, paymentRepo, transferRepo, log)
	reportService := reportapp.NewService(companyRepo, customerRepo, schemeRepo, penaltyRepo, loanRepo, otherLoanRepo, reportCache, log)
	aggregator := reportapp.NewAggregator(companyRepo, customerRepo, loanRepo, otherLoanRepo, expenseRepo, incomeRepo, chargeRepo, paymentRepo, transferRepo, log)

	// Daily overdue sweep (if enabled)
	var overdueScheduler *scheduler.OverdueScheduler
	if cfg.Scheduler.Enabled {
		sweeper := scheduler.NewOverdueSweeper(loanRepo, otherLoanRepo, log)
		jobRuns := scheduler.NewJobRunRepository(db.DB)
		overdueScheduler = scheduler.NewOverdueScheduler(scheduler.OverdueSchedulerConfig{
			Enabled:       cfg.Scheduler.Enabled,
			SweepHour:     cfg.Scheduler.SweepHour,
			SweepMinute:   cfg.Scheduler.SweepMinute,
			CheckInterval: cfg.Scheduler.CheckInterval,
			JobTimeout:    cfg.Scheduler.JobTimeout,
		}, sweeper, companyRepo, jobRuns, log)
		if err := overdueScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start overdue scheduler", zap.Error(err))
		}
		defer func() {
			if err := overdueScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping overdue scheduler", zap.Error(err))
			}
		}()
		log.Info("Overdue scheduler started",
			zap.Int("sweep_hour", cfg.Scheduler.SweepHour),
			zap.Int("sweep_minute", cfg.Scheduler.SweepMinute),
		)
	}

	// Initialize HTTP handlers
	companyHandler := handler.NewCompanyHandler(companyService)
	branchHandler := handler.NewBranchHandler(branchService)
	customerHandler := handler.NewCustomerHandler(customerService)
	schemeHandler := handler.NewSchemeHandler(schemeService)
	loanHandler := handler.NewLoanHandler(loanService)
	otherLoanHandler := handler.NewOtherLoanHandler(otherLoanService)
	booksHandler := handler.NewBooksHandler(booksService)
	reportHandler := handler.NewReportHandler(reportService)
	feedHandler := handler.NewFeedHandler(aggregator)
	systemHandler := handler.NewSystemHandler(db, overdueScheduler)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Every API route except company registration and health requires the
	// X-Company-ID header, which scopes all reads and writes.
	companyConfig := middleware.DefaultCompanyConfig()
	companyConfig.Logger = log
	engine.Use(middleware.CompanyMiddlewareWithConfig(companyConfig))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(companyHandler).
		Register(branchHandler).
		Register(customerHandler).
		Register(schemeHandler).
		Register(loanHandler).
		Register(otherLoanHandler).
		Register(booksHandler).
		Register(reportHandler).
		Register(feedHandler).
		Register(systemHandler)
	r.Setup()

	log.Info("Routes registered")

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
