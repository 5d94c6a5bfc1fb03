// Package main is the entrypoint for the admin API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ValenCardozo/expert-pancake/internal/api"
	"github.com/ValenCardozo/expert-pancake/internal/auth/token"
	"github.com/ValenCardozo/expert-pancake/internal/infrastructure/config"
	mongodb "github.com/ValenCardozo/expert-pancake/internal/infrastructure/db/mongo"
	redisdb "github.com/ValenCardozo/expert-pancake/internal/infrastructure/db/redis"
	"github.com/ValenCardozo/expert-pancake/internal/infrastructure/queue"
	"github.com/ValenCardozo/expert-pancake/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.Env == "development", nil)

	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer redisClient.Close()

	key := []byte(cfg.JWTSecret)
	issuer := token.NewIssuer(key, cfg.TokenTTL)
	validator := token.NewValidator(key)

	mail := queue.NewDispatcher(cfg.Mail.Workers, queue.NewLogMailer(logger.Component("mail")), logger.Component("mail"))
	mail.Start(ctx)

	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     redisClient,
		Issuer:    issuer,
		Validator: validator,
		Mail:      mail,
		ResetTTL:  cfg.ResetTTL,
		Log:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
