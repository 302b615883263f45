package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/citylink/citylink-api/internal/api"
	"github.com/citylink/citylink-api/internal/core/ports"
	"github.com/citylink/citylink-api/internal/core/service"
	"github.com/citylink/citylink-api/internal/infrastructure/ai"
	"github.com/citylink/citylink-api/internal/infrastructure/db/mongo"
	"github.com/citylink/citylink-api/internal/infrastructure/db/redis"
	"github.com/citylink/citylink-api/internal/pkg/config"
	"github.com/citylink/citylink-api/pkg/logger"
)

// @title CityLink API
// @version 1.0
// @description Municipal issue reporting and triage service.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	accountRepo := mongo.NewAccountRepository(db)
	issueRepo := mongo.NewIssueRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("account index creation failed")
	}
	if err := issueRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("issue index creation failed")
	}

	var summarizer ports.Summarizer
	if cfg.Gemini.APIKey != "" {
		summarizer, err = ai.NewGeminiSummarizer(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("gemini client creation failed")
		}
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, issue analysis disabled")
		summarizer = ai.Unavailable{}
	}

	sessions := redis.NewSessionStore(rdb, cfg.TokenTTL)
	accountService := service.NewAccountService(
		accountRepo,
		sessions,
		service.BootstrapCredentials{
			ID:       cfg.Bootstrap.AdminID,
			Email:    cfg.Bootstrap.AdminEmail,
			Password: cfg.Bootstrap.AdminPassword,
		},
		cfg.JWTSecret,
		cfg.TokenTTL,
		log,
	)
	issueService := service.NewIssueService(issueRepo, summarizer, cfg.Gemini.Timeout, log)

	if err := accountService.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("super admin bootstrap failed")
	}

	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     rdb,
		Accounts:  accountService,
		Issues:    issueService,
		Sessions:  sessions,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
