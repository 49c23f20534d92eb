package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baufin/baufin-backend/internal/config"
	"github.com/baufin/baufin-backend/internal/handler"
	"github.com/baufin/baufin-backend/internal/middleware"
	"github.com/baufin/baufin-backend/internal/repository/postgres"
	"github.com/baufin/baufin-backend/internal/repository/storage"
	"github.com/baufin/baufin-backend/internal/service"
	"github.com/baufin/baufin-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	categoryRepo := postgres.NewCategoryRepository(pool)
	budgetRepo := postgres.NewBudgetLineRepository(pool)
	roomRepo := postgres.NewRoomRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	summaryRepo := postgres.NewSummaryRepository(pool)

	// Optional receipt storage. Without a bucket, uploads are disabled but
	// everything else works.
	var receiptRepo storage.ReceiptRepository
	if cfg.S3.Enabled() {
		s3Repo, err := storage.NewS3ReceiptRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize receipt storage")
		}
		receiptRepo = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Receipt storage enabled")
	} else {
		log.Warn().Msg("Receipt storage disabled (no S3 bucket configured)")
	}

	// WebSocket hub
	hub := websocket.NewHub()

	// Initialize services
	summaryService := service.NewSummaryService(categoryRepo, roomRepo, budgetRepo, expenseRepo, contractRepo, summaryRepo)
	categoryService := service.NewCategoryService(categoryRepo, budgetRepo, expenseRepo)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo)
	roomService := service.NewRoomService(roomRepo)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo)
	contractService := service.NewContractService(contractRepo, categoryRepo, expenseRepo)
	supplierService := service.NewSupplierService(supplierRepo, deliveryRepo, categoryRepo, expenseRepo)
	aggregationService := service.NewAggregationService(categoryRepo, roomRepo, budgetRepo, expenseRepo, contractRepo)
	forecastService := service.NewForecastService(categoryRepo, budgetRepo, expenseRepo, contractRepo)
	reportService := service.NewReportService(categoryRepo, roomRepo, budgetRepo, expenseRepo, contractRepo, supplierRepo, deliveryRepo)
	attachmentService := service.NewAttachmentService(receiptRepo)
	analysisService := service.NewAnalysisService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if analysisService.Available() {
		log.Info().Str("model", cfg.OpenAIModel).Msg("Budget analysis enabled")
	} else {
		log.Warn().Msg("Budget analysis disabled (no OpenAI API key configured)")
	}

	// Every mutation broadcasts an event and rewrites the summary snapshot
	for _, s := range []interface {
		SetEventPublisher(websocket.EventPublisher)
		SetSummaryService(*service.SummaryService)
	}{categoryService, budgetService, roomService, expenseService, contractService, supplierService} {
		s.SetEventPublisher(hub)
		s.SetSummaryService(summaryService)
	}
	summaryService.SetEventPublisher(hub)

	// Initialize handlers
	handlers := handler.Handlers{
		Category:   handler.NewCategoryHandler(categoryService),
		Budget:     handler.NewBudgetHandler(budgetService),
		Room:       handler.NewRoomHandler(roomService),
		Expense:    handler.NewExpenseHandler(expenseService),
		Contract:   handler.NewContractHandler(contractService),
		Supplier:   handler.NewSupplierHandler(supplierService),
		Dashboard:  handler.NewDashboardHandler(aggregationService, summaryService),
		Forecast:   handler.NewForecastHandler(forecastService),
		Report:     handler.NewReportHandler(reportService, analysisService),
		Attachment: handler.NewAttachmentHandler(attachmentService),
		WebSocket:  handler.NewWebSocketHandler(hub, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Rate limiting per client IP
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
