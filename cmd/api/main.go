package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-scribe/pkg/validator"

	"github.com/johnquangdev/meeting-scribe/internal/adapter/handler"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
	aiuse "github.com/johnquangdev/meeting-scribe/internal/usecase/ai"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/report"
	pkgai "github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	"github.com/johnquangdev/meeting-scribe/pkg/metrics"
	"github.com/johnquangdev/meeting-scribe/pkg/resilience"
)

// @title           Meeting Scribe API
// @version         1.0
// @description     API that turns meeting audio into structured summaries with topics, decisions and action items

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the API token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Rate limiting per client IP
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.Server.RateLimitRPS),
			Burst:     cfg.Server.RateLimitBurst,
			ExpiresIn: 3 * time.Minute,
		},
	)))

	// Prometheus metrics
	m := metrics.New("api")
	e.Use(m.Middleware())

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:        cfg.Resilience.RetryMaxAttempts,
		RetryInitialBackoff:     cfg.Resilience.RetryInitialBackoff,
		RetryMaxBackoff:         cfg.Resilience.RetryMaxBackoff,
		RetryMaxElapsed:         cfg.Resilience.RetryMaxElapsed,
		BreakerEnabled:          cfg.Resilience.BreakerEnabled,
		BreakerMinRequests:      cfg.Resilience.BreakerMinRequests,
		BreakerFailureRatio:     cfg.Resilience.BreakerFailureRatio,
		BreakerOpenTimeout:      cfg.Resilience.BreakerOpenTimeout,
		BreakerHalfOpenMaxCalls: cfg.Resilience.BreakerHalfOpenCalls,
		OutboundRPS:             cfg.Resilience.OutboundRPS,
		OutboundBurst:           cfg.Resilience.OutboundBurst,
	}, logger)

	// Optional object storage for audio staging
	var (
		stager         pkgai.AudioStager
		storageHandler *handler.Storage
	)
	if cfg.Storage.Enabled {
		log.Println("📦 Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		stager = minioClient
		storageHandler = handler.NewStorage(minioClient, logger)
		log.Printf("✅ Object storage connected, bucket: %s", cfg.Storage.BucketName)
	} else {
		log.Println("📦 Object storage disabled, audio goes to the provider directly")
	}

	// Initialize AI providers
	log.Println("🤖 Initializing AI components...")
	limits := pkgai.InputLimits{
		MaxBytes:       cfg.Pipeline.MaxUploadBytes,
		AllowedFormats: cfg.Pipeline.AllowedFormats,
	}

	var (
		transcriber pkgai.Transcriber
		summarizer  pkgai.Summarizer
	)
	if cfg.IsLive() {
		transcriber = pkgai.NewAssemblyAITranscriber(pkgai.AssemblyAIConfig{
			APIKey:        cfg.AssemblyAI.APIKey,
			Language:      cfg.AssemblyAI.Language,
			SpeakerLabels: cfg.AssemblyAI.SpeakerLabels,
		}, limits, executor, stager, logger)
		summarizer = pkgai.NewGroqSummarizer(pkgai.GroqConfig{
			APIKey:      cfg.Groq.APIKey,
			BaseURL:     cfg.Groq.BaseURL,
			Model:       cfg.Groq.Model,
			Temperature: cfg.Groq.Temperature,
			MaxTokens:   cfg.Groq.MaxTokens,
		}, executor, logger)
		log.Printf("✅ Live providers ready, model: %s", cfg.Groq.Model)
	} else {
		transcriber = pkgai.NewMockTranscriber(limits)
		summarizer = pkgai.NewMockSummarizer()
		log.Println("⚠️  Pipeline running in MOCK mode (no provider calls)")
	}

	promptTemplate, err := pkgai.LoadPromptTemplate(cfg.Pipeline.PromptTemplateFile)
	if err != nil {
		log.Fatalf("Failed to load prompt template: %v", err)
	}

	aiService := aiuse.NewAIService(transcriber, summarizer, promptTemplate, cfg, m, logger)

	// Summary retention store
	store := cache.NewSummaryStore(cfg.Pipeline.SummaryTTL)
	defer store.Close()

	// Report exporter
	exporter := report.NewExporter(logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	meetingController := handler.NewMeetingController(aiService, store, cfg, logger)
	reportHandler := handler.NewReport(store, exporter, logger)

	router := handler.NewRouter(cfg, meetingController, reportHandler, storageHandler, m, logger)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.Server.Address()
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s, mode: %s", cfg.Server.Environment, cfg.Pipeline.Mode)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Server.Environment == "development" {
		return zap.NewDevelopment()
	}

	zcfg := zap.NewProductionConfig()
	if level, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}
