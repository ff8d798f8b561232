package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/selectshop/shop-api/internal/api"
	"github.com/selectshop/shop-api/internal/core/service"
	mongodb "github.com/selectshop/shop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/selectshop/shop-api/internal/infrastructure/db/redis"
	httphandlers "github.com/selectshop/shop-api/internal/infrastructure/http/handlers"
	"github.com/selectshop/shop-api/internal/infrastructure/kakao"
	"github.com/selectshop/shop-api/internal/pkg/config"
	"github.com/selectshop/shop-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		if cfg.Env != "development" {
			log.Fatal().Msg("JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = "dev-only-secret"
		log.Warn().Msg("JWT_SECRET not set, using development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	folders := mongodb.NewFolderRepository(db)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(users, tokens, cfg.AdminToken)

	kakaoClient := kakao.NewClient(kakao.Config{
		ClientID:    cfg.Kakao.ClientID,
		RedirectURI: cfg.Kakao.RedirectURI,
		TokenURL:    cfg.Kakao.TokenURL,
		ProfileURL:  cfg.Kakao.ProfileURL,
		Timeout:     cfg.Kakao.Timeout,
	})
	provisioner := service.NewAccountProvisioner(users)
	kakaoService := service.NewKakaoService(kakaoClient, provisioner, tokens, log)

	e := api.NewRouter(api.Deps{
		AuthService:  authService,
		KakaoService: kakaoService,
		KakaoClient:  kakaoClient,
		TokenService: tokens,
		Users:        users,
		Folders:      folders,
		States:       redisdb.NewStateStore(rdb),
		Health:       httphandlers.NewHealthDependenciesHandler(db, rdb),
		Log:          log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
