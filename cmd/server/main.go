// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"otpauth/internal/config"
	"otpauth/internal/logger"
	"otpauth/internal/repositories"
	"otpauth/internal/repositories/cache"
	"otpauth/internal/routes"
	"otpauth/internal/services/notification"
	"otpauth/internal/services/otp"
	"otpauth/internal/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	db, err := repositories.NewPostgres(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Warn("failed to close database connection", zap.Error(err))
		}
	}()
	log.Info("connected to database", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))

	if err := repositories.Migrate(db); err != nil {
		return err
	}

	if cfg.JWT.Secret == "" {
		log.Warn("JWT_SECRET is not set; login and authenticated routes will fail")
	}

	deps := routes.Dependencies{
		DB:                db,
		Signer:            utils.NewJWTSigner(cfg.JWT.Secret, cfg.JWT.ExpiresIn),
		Generator:         otp.NewGenerator(),
		Locker:            cache.NopLocker{},
		Sender:            notification.NewService(log),
		Logger:            log,
		AllowedOrigins:    cfg.AllowedOrigins,
		MaxActiveSessions: cfg.MaxActiveSessions,
		Development:       cfg.Env == "development",
		ExposeOTP:         cfg.Env != "production",
		AccessLog:         true,
	}

	if cfg.Redis.Host != "" {
		client := cache.NewRedisClient(&cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cacheService := cache.NewCacheService(client, cfg.ProfileCacheTTL)
		defer func() {
			if err := cacheService.Close(); err != nil {
				log.Warn("failed to close Redis connection", zap.Error(err))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := cacheService.HealthCheck(ctx)
		cancel()
		if err != nil {
			return err
		}

		deps.CacheService = cacheService
		deps.Locker = cache.NewRedisLocker(client, cfg.PhoneLockTTL, cfg.PhoneLockTTL, log)
		log.Info("connected to redis", zap.String("host", cfg.Redis.Host))
	} else {
		log.Info("redis not configured; profile cache and phone locks disabled")
	}

	if cfg.Twilio.Enabled() {
		deps.Sender = notification.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.From, log)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Registry = registry

	app := routes.NewApp(deps)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + cfg.Port)
	}()
	log.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	return app.ShutdownWithTimeout(10 * time.Second)
}
