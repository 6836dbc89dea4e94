package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"reading-persona/internal/config"
	"reading-persona/internal/db"
	apihttp "reading-persona/internal/http"
	"reading-persona/internal/llm"
	"reading-persona/internal/metrics"
	"reading-persona/internal/repository"
	"reading-persona/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	observer, err := metrics.NewReportObserver("reading_persona", registry)
	if err != nil {
		logger.Fatal("metrics init", zap.Error(err))
	}

	var llmClient llm.LLMClient
	if cfg.LLMAPIKey == "" {
		logger.Warn("llm api key not configured, narratives will use fallback text")
		llmClient = llm.NewDisabledClient("llm api key not configured")
	} else {
		httpClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger, llm.Options{
			Temperature: cfg.LLMTemperature,
			JSONMode:    true,
			Timeout:     cfg.NarrativeTimeout,
		})
		llmClient = llm.NewBreakerClient(httpClient, llm.DefaultBreakerSettings(), logger)
	}
	augmenter := service.NewLLMNarrativeAugmenter(llmClient, cfg.NarrativeTimeout, logger)

	prefRepo := repository.NewPgPreferenceRepository(pool)
	pgReports := repository.NewPgReportRepository(pool)
	var reportRepo repository.ReportRepository = pgReports

	books, err := repository.NewCachedBookLookup(repository.NewPgBookRepository(pool), cfg.BookCacheSize)
	if err != nil {
		logger.Fatal("book cache init", zap.Error(err))
	}

	var regenLimiter service.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			reportRepo = repository.NewCachedReportRepository(pgReports, redisClient, cfg.ReportCacheTTL, observer, logger)
			regenLimiter = service.NewRedisRateLimiter(redisClient, "regen:", cfg.RegenerateWindow, cfg.RegenerateLimit)
		}
		cancel()
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTAccessTTL())
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	reportSvc := service.NewReportService(prefRepo, reportRepo, augmenter, logger,
		service.WithBookLookup(books),
		service.WithSimilarReaderFinder(pgReports),
		service.WithRegenerateLimiter(regenLimiter),
		service.WithReportObserver(observer),
	)
	prefSvc := service.NewPreferenceService(prefRepo, reportRepo, books, logger)

	onboardingHandler := apihttp.NewOnboardingHandler(logger, prefSvc)
	reportHandler := apihttp.NewReportHandler(logger, reportSvc)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	router := apihttp.NewRouter(logger, jwtSvc, onboardingHandler, reportHandler, metricsHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
