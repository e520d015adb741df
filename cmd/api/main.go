package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"stylebot/internal/catalog"
	"stylebot/internal/config"
	"stylebot/internal/db"
	"stylebot/internal/email"
	apihttp "stylebot/internal/http"
	"stylebot/internal/llm"
	"stylebot/internal/repository"
	"stylebot/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEmbeddingModel, cfg.LLMTimeout, logger)

	// Catalogo: Postgres si hay DATABASE_URL, el catalogo sembrado en
	// memoria en caso contrario.
	var provider catalog.Provider = catalog.NewInMemoryProvider(nil, 0)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}
		pgCatalog := repository.NewPgCatalogRepository(pool, llmClient)
		if err := pgCatalog.Seed(ctx, catalog.DefaultProducts()); err != nil {
			logger.Warn("catalog seed failed", zap.Error(err))
		}
		provider = pgCatalog
	}

	chatSvc := service.NewChatService(llmClient, logger)
	recSvc := service.NewRecommendationService(llmClient, provider, logger)
	if pgCatalog, ok := provider.(*repository.PgCatalogRepository); ok {
		recSvc.WithSemanticSearch(pgCatalog)
	}
	styleSvc := service.NewStyleService(llmClient, logger)

	store := repository.NewInMemorySessionStore(cfg.SessionMaxIdle)
	store.StartSweeper(ctx, 10*time.Minute)

	sessionSvc := service.NewSessionService(store, chatSvc, recSvc, styleSvc, logger)

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			sessionSvc.WithRateLimiter(service.NewRedisChatRateLimiter(redisClient, cfg.ChatRateWindow, cfg.ChatRateMax))
		}
		cancel()
	}

	var notifier email.Sender = email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" && cfg.SupportEmail != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SupportEmail, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			notifier = sender
		}
	}
	sessionSvc.WithEscalationNotifier(notifier)

	if cfg.SessionTokenSecret == "" {
		logger.Warn("session token secret not configured")
	}
	tokenSvc := service.NewSessionTokenService(cfg.SessionTokenSecret, cfg.SessionTokenTTL)

	chatHandler := apihttp.NewChatHandler(logger, sessionSvc, tokenSvc)
	catalogHandler := apihttp.NewCatalogHandler(logger, provider)
	router := apihttp.NewRouter(logger, chatHandler, catalogHandler, tokenSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
