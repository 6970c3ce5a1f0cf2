package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hrs/backend/internal/application/document"
	"github.com/hrs/backend/internal/application/workflow"
	infraaudit "github.com/hrs/backend/internal/infrastructure/audit"
	"github.com/hrs/backend/internal/infrastructure/config"
	"github.com/hrs/backend/internal/infrastructure/event"
	"github.com/hrs/backend/internal/infrastructure/logger"
	"github.com/hrs/backend/internal/infrastructure/persistence"
	"github.com/hrs/backend/internal/infrastructure/printing"
	"github.com/hrs/backend/internal/infrastructure/storage"
	"github.com/hrs/backend/internal/interfaces/http/handler"
	"github.com/hrs/backend/internal/interfaces/http/middleware"
	"github.com/hrs/backend/internal/interfaces/http/router"
)

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

	log.Info("Starting HRS Backend",
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
	requestRepo := persistence.NewGormRequestRepository(db.DB)
	hotelRepo := persistence.NewGormHotelRepository(db.DB)
	regionRepo := persistence.NewGormRegionRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	// Initialize event bus and subscribe the audit trail recorder
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(infraaudit.NewRecorder(auditRepo, log))

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize the PDF rendering pipeline
	var pdfRenderer printing.PDFRenderer
	switch cfg.Printing.Engine {
	case "wkhtmltopdf":
		pdfRenderer, err = printing.NewWkhtmltopdfRenderer(&printing.WkhtmltopdfConfig{
			DefaultTimeout: cfg.Printing.Timeout,
			Logger:         log,
		})
	default:
		pdfRenderer, err = printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.Timeout,
			RemoteURL:      cfg.Printing.RemoteURL,
			NoSandbox:      cfg.Printing.NoSandbox,
			Logger:         log,
		})
	}
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	docRenderer := printing.NewDocumentRenderer(pdfRenderer, printing.CompanyInfo{
		Name:    cfg.Printing.CompanyName,
		Address: cfg.Printing.CompanyAddress,
	}, log)

	// Initialize the document store. With S3 disabled, generated purchase
	// orders live in process memory and are regenerated on demand after a
	// restart.
	var docStore document.Store
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3DocumentStore(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize document store", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Store.EnsureBucket(ctx); err != nil {
			cancel()
			log.Fatal("Failed to ensure document bucket", zap.Error(err))
		}
		cancel()
		docStore = s3Store
		log.Info("Document store ready",
			zap.String("bucket", s3Store.GetBucket()),
			zap.String("endpoint", cfg.Storage.Endpoint),
		)
	} else {
		docStore = storage.NewMemoryDocumentStore()
		log.Warn("S3 storage disabled, using in-memory document store")
	}

	// Initialize application services
	requestService := workflow.NewRequestService(requestRepo, employeeRepo, eventBus, log)
	approvalService := workflow.NewApprovalService(requestRepo, eventBus, log)
	reservationService := workflow.NewReservationService(requestRepo, hotelRepo, employeeRepo, docRenderer, docStore, eventBus, log)
	financeService := workflow.NewFinanceService(requestRepo, eventBus, log)
	documentService := document.NewService(requestRepo, hotelRepo, employeeRepo, docRenderer, docStore, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router with custom middleware
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

	// Configure CORS from config
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Resolve the acting employee from the identity headers set upstream
	engine.Use(middleware.ActorContext())

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewRequestHandler(requestService, approvalService, reservationService, financeService, auditRepo)).
		Register(handler.NewPurchaseOrderHandler(financeService, documentService)).
		Register(handler.NewReferenceHandler(hotelRepo, regionRepo)).
		Register(handler.NewEmployeeHandler(employeeRepo)).
		Register(handler.NewSystemHandler(db.DB))
	r.Setup()

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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
