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

	"github.com/Adeen16/Rural-Clinic-AI/internal/adapters/cache"
	"github.com/Adeen16/Rural-Clinic-AI/internal/adapters/database"
	"github.com/Adeen16/Rural-Clinic-AI/internal/adapters/events"
	"github.com/Adeen16/Rural-Clinic-AI/internal/adapters/rulefile"
	"github.com/Adeen16/Rural-Clinic-AI/internal/api/handlers"
	"github.com/Adeen16/Rural-Clinic-AI/internal/api/middleware"
	"github.com/Adeen16/Rural-Clinic-AI/internal/api/routes"
	"github.com/Adeen16/Rural-Clinic-AI/internal/application/services"
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/providers"
	"github.com/Adeen16/Rural-Clinic-AI/internal/domain/repositories"
	"github.com/Adeen16/Rural-Clinic-AI/internal/evaluation"
	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/clients/postgres"
	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/clients/redis"
	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/notifications"
	"github.com/Adeen16/Rural-Clinic-AI/internal/infrastructure/observability"
	"github.com/Adeen16/Rural-Clinic-AI/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	logger := observability.GetLogger()

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
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		// Continue without Redis - the application can work without caching
		logger.Warn().Err(err).Msg("Failed to initialize Redis client")
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for triage completion events
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		logger.Info().Msg("Event bus initialized successfully")
	} else {
		logger.Info().Msg("Event bus disabled (Redis not available)")
	}

	// Select the rule source
	var ruleRepo repositories.RuleRepository
	switch cfg.Rules.Source {
	case config.RuleSourceDatabase:
		ruleRepo = database.NewRuleAdapter(pgClient)
		logger.Info().Msg("Loading rules from database")
	default:
		ruleRepo = rulefile.NewYAMLAdapter(cfg.Rules.FilePath)
		logger.Info().Str("path", cfg.Rules.FilePath).Msg("Loading rules from file")
	}

	// Compile the initial rule set. A broken rule set is a startup failure,
	// not something to limp along with.
	defs, err := ruleRepo.LoadRules(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load rule definitions")
	}
	store, err := evaluation.NewStore(defs)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to compile rule definitions")
	}
	activeStore := evaluation.NewActiveStore(store)
	logger.Info().Int("rule_count", store.Len()).Msg("Rule store compiled")

	auditAdapter := database.NewAuditAdapter(pgClient)

	// Initialize services
	triageService := services.NewTriageService(activeStore, auditAdapter)
	triageService.SetMetrics(metrics)
	if eventBus != nil {
		triageService.SetEventBus(eventBus)
		logger.Info().Msg("Event bus configured for triage service")
	}

	rulesService := services.NewRulesService(ruleRepo, activeStore)

	// Start escalation alerts when an event bus and a recipient are configured
	var escalationService *services.EscalationService
	if eventBus != nil && cfg.Alerts.Recipient != "" {
		sender, err := notifications.NewWhatsAppCloudSender()
		if err != nil {
			logger.Warn().Err(err).Msg("Escalation alerts disabled")
		} else {
			escalationService = services.NewEscalationService(eventBus, sender, cfg.Alerts.Recipient)
			if err := escalationService.Start(); err != nil {
				logger.Warn().Err(err).Msg("Failed to start escalation service")
				escalationService = nil
			}
		}
	}

	// Initialize handlers
	triageHandler := handlers.NewTriageHandler(triageService)
	auditHandler := handlers.NewAuditHandler(triageService)
	rulesHandler := handlers.NewRulesHandler(rulesService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		logger.Info().Msg("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		triageHandler,
		auditHandler,
		rulesHandler,
		cacheMiddleware,
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
		logger.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	// Stop escalation alerts before the bus goes away
	if escalationService != nil {
		escalationService.Stop()
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing event bus")
		}
	}

	logger.Info().Msg("Server stopped")
}
