package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/rafabene/aeo-studio/docs"
	"github.com/rafabene/aeo-studio/internal/auth"
	httphandlers "github.com/rafabene/aeo-studio/internal/handlers/http"
	"github.com/rafabene/aeo-studio/internal/infrastructure/config"
	"github.com/rafabene/aeo-studio/internal/infrastructure/i18n"
	"github.com/rafabene/aeo-studio/internal/infrastructure/llm"
	"github.com/rafabene/aeo-studio/internal/infrastructure/logging"
	"github.com/rafabene/aeo-studio/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/aeo-studio/internal/infrastructure/realtime"
	"github.com/rafabene/aeo-studio/internal/infrastructure/scraper"
	"github.com/rafabene/aeo-studio/internal/infrastructure/webhook"
	"github.com/rafabene/aeo-studio/internal/services"
)

//	@title						AEO Studio API
//	@version					1.0
//	@description				Content pipeline, AI writing assistant and AEO scoring.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting aeo studio",
		"env", cfg.Env,
		"version", "dev",
	)
	if cfg.LLM.APIKey == "" {
		logger.Warn("ANTHROPIC_API_KEY not set, generation endpoints will fail")
	}

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, cfg.Logging.Level, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewEmbeddedService("en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	topicRepo := postgres.NewTopicRepository(db)
	competitorRepo := postgres.NewCompetitorRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar adapters externos
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL)
	generator := llm.NewAnthropicGenerator(llm.Config{
		APIKey:    cfg.LLM.APIKey,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
	}, logger)
	fetcher := scraper.NewHTTPFetcher(nil, scraper.Options{
		DefaultTimeout:    cfg.Fetcher.Timeout,
		DefaultUserAgent:  cfg.Fetcher.UserAgent,
		RequestsPerSecond: cfg.Fetcher.RequestsPerSecond,
		MaxBodyBytes:      cfg.Fetcher.MaxBodyBytes,
	}, logger)
	publisher := webhook.NewPublisher(nil, logger)
	hub := realtime.NewHub(cfg.CORS.Origins(), logger)

	// Inicializar services
	userService := services.NewUserService(userRepo, jwtManager, logger)
	topicService := services.NewTopicService(topicRepo, userRepo, uow, generator, hub, logger)
	assistService := services.NewContentAssistService(topicRepo, userRepo, generator, hub, logger)
	publishService := services.NewPublishService(topicRepo, userRepo, publisher, hub, logger)
	competitorService := services.NewCompetitorService(competitorRepo, userRepo, fetcher, generator, cfg.Fetcher.Timeout, logger)
	aeoService := services.NewAEOService(userRepo, fetcher, generator, services.AEOOptions{
		ScanTimeout: cfg.Fetcher.ScanTimeout,
		UserAgent:   cfg.Fetcher.BrowserUserAgent,
		RescanAfter: cfg.AEO.RescanAfter,
	}, logger)
	onboardingService := services.NewOnboardingService(userRepo, competitorRepo, topicRepo, uow, hub, logger)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterConfig{
		Env:            cfg.Env,
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: cfg.CORS.Origins(),
		Tokens:         jwtManager,
		I18n:           i18nService,
		Logger:         logger,
	}, httphandlers.Handlers{
		User:       httphandlers.NewUserHandler(userService, logger),
		Topic:      httphandlers.NewTopicHandler(topicService, logger),
		Content:    httphandlers.NewContentHandler(assistService, publishService, logger),
		Competitor: httphandlers.NewCompetitorHandler(competitorService, logger),
		AEO:        httphandlers.NewAEOHandler(aeoService, logger),
		Onboarding: httphandlers.NewOnboardingHandler(onboardingService, logger),
		Realtime:   httphandlers.NewRealtimeHandler(hub, logger),
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server exited")
}
