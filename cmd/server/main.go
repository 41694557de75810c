// Command server runs the uwgen media API.
//
// @title        uwgen media API
// @version      1.0
// @description  Multi-tenant image generation service with encrypted credential storage.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/uwgen/media-api/docs"
	"github.com/uwgen/media-api/internal/api"
	"github.com/uwgen/media-api/internal/infrastructure/config"
	mongodb "github.com/uwgen/media-api/internal/infrastructure/db/mongo"
	redisdb "github.com/uwgen/media-api/internal/infrastructure/db/redis"
	"github.com/uwgen/media-api/internal/infrastructure/provider"
	"github.com/uwgen/media-api/internal/infrastructure/storage"
	"github.com/uwgen/media-api/internal/pkg/secrets"
	"github.com/uwgen/media-api/internal/pkg/token"
	"github.com/uwgen/media-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	issuer, err := token.NewIssuer(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build token issuer")
	}

	keys, err := cfg.EncryptionKeys()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load encryption keys")
	}
	cipher, err := secrets.NewCipher(keys)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build credential cipher")
	}

	artifacts, err := storage.NewStore(cfg.MediaRoot)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open media root")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		_ = rdb.Close()
	}()

	e := api.NewRouter(api.Dependencies{
		DB:         db,
		Redis:      rdb,
		Issuer:     issuer,
		Cipher:     cipher,
		Artifacts:  artifacts,
		Provider:   provider.NewGeminiClient(cfg.GeminiAPIURL),
		SessionTTL: cfg.SessionTTL(),
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
