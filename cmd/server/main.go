package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/gonzaloriv/travelsearch/internal/config"
	"github.com/gonzaloriv/travelsearch/internal/contextstore"
	"github.com/gonzaloriv/travelsearch/internal/engine"
	"github.com/gonzaloriv/travelsearch/internal/executor"
	"github.com/gonzaloriv/travelsearch/internal/handler"
	"github.com/gonzaloriv/travelsearch/internal/parser"
	"github.com/gonzaloriv/travelsearch/internal/ratelimit"
	"github.com/gonzaloriv/travelsearch/internal/trace"
	"github.com/gonzaloriv/travelsearch/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	var store contextstore.Store
	if cfg.RedisEnabled {
		redisStore, err := contextstore.NewRedisStore(contextstore.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.ContextTTL,
		})
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		store = redisStore
		log.Info("redis context store enabled",
			zap.String("host", cfg.RedisHost),
			zap.String("port", cfg.RedisPort),
			zap.Duration("ttl", cfg.ContextTTL))
	} else {
		store = contextstore.NewMemoryStore(cfg.ContextTTL)
		log.Info("in-memory context store enabled", zap.Duration("ttl", cfg.ContextTTL))
	}
	defer store.Close()

	limiter := ratelimit.NewConversationLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitPerSecond,
		BurstSize:         cfg.RateLimitBurst,
	})

	eng := engine.New(trace.NewZapRecorder(log))
	parserClient := parser.NewHTTPClient(cfg.ParserURL, cfg.CollabTimeout)
	executorClient := executor.NewHTTPClient(cfg.ExecutorURL, cfg.CollabTimeout)

	searchHandler := handler.NewSearchHandler(eng, parserClient, executorClient, store, limiter, log)

	api := e.Group("/api/v1")
	api.POST("/search/message", searchHandler.Message)
	e.GET("/health", handler.HealthHandler)

	log.Info("starting conversational search server", zap.String("port", cfg.Port))

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
