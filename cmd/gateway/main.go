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

	"golang.org/x/crypto/bcrypt"

	"github.com/hragentic/hr-gateway/internal/api"
	"github.com/hragentic/hr-gateway/internal/core/domain"
	"github.com/hragentic/hr-gateway/internal/core/ports"
	"github.com/hragentic/hr-gateway/internal/infrastructure/config"
	mongoinfra "github.com/hragentic/hr-gateway/internal/infrastructure/db/mongo"
	redisinfra "github.com/hragentic/hr-gateway/internal/infrastructure/db/redis"
	"github.com/hragentic/hr-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Covers the missing MONGO_URI case: the gateway refuses to start
		// without its identity store.
		log.Fatalf("failed to load configuration: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env != "production",
	})

	client, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	authRepo := mongoinfra.NewAuthRepository(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		logg.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := seedAdmin(ctx, authRepo); err != nil {
		logg.Warn().Err(err).Msg("failed to seed default admin user")
	}

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	e := api.NewRouter(db, rdb, cfg, logg)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server stopped")
		}
	}()

	for _, entry := range cfg.Registry().Entries() {
		logg.Info().Str("service", entry.Name).Str("url", entry.BaseURL).Msg("registered domain peer")
	}
	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("hr-gateway started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// seedAdmin creates the default admin account on first startup so the fleet
// is reachable before any registration happens.
func seedAdmin(ctx context.Context, repo ports.AuthRepository) error {
	const adminEmail = "admin@example.com"

	if _, err := repo.FindByEmail(ctx, adminEmail); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = repo.Create(ctx, &domain.User{
		EmployeeID:   "EMP000001",
		Name:         "Admin User",
		Email:        adminEmail,
		PasswordHash: string(hash),
		Department:   "Administration",
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	return err
}
