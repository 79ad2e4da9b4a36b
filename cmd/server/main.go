package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"authapi/backend/internal/config"
	domain "authapi/backend/internal/domain/auth"
	"authapi/backend/internal/httpserver"
	"authapi/backend/internal/infrastructure/postgres"
	"authapi/backend/internal/infrastructure/supabase"
	"authapi/backend/internal/infrastructure/token"
	authusecase "authapi/backend/internal/usecase/auth"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rootCtx := context.Background()

	var store domain.CredentialStore
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := postgres.New(rootCtx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Migrate(rootCtx); err != nil {
			logger.Error("failed to run database migrations", "error", err)
			os.Exit(1)
		}
		store = postgres.NewUserStore(db.Pool)
	default:
		store = supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)
	}

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := authusecase.NewService(store, tokenManager, authusecase.PasswordScheme(cfg.PasswordScheme), logger)

	server := httpserver.NewServer(cfg, authService, logger)
	logger.Info("HTTP server listening", "addr", server.Addr(), "store", cfg.StoreBackend)

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				logger.Info("HTTP server closed")
				return
			}
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("graceful shutdown completed")
	}
}
