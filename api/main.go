package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/yard-tracker/internal/auth"
	"github.com/rogerio-castellano/yard-tracker/internal/cache"
	"github.com/rogerio-castellano/yard-tracker/internal/config"
	"github.com/rogerio-castellano/yard-tracker/internal/db"
	"github.com/rogerio-castellano/yard-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/yard-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/yard-tracker/internal/http/router"
	"github.com/rogerio-castellano/yard-tracker/internal/logging"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/redissvc"
	"github.com/rogerio-castellano/yard-tracker/internal/repo"
)

const (
	shutdownTimeout = 10 * time.Second
	evictInterval   = time.Minute
)

// @title Yard Tracker API
// @version 1.0
// @description REST API for clients, vehicles, yards, zones, boxes and vehicle tracking.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handlers.SetLogger(logger)

	var users repo.UserRepository
	database, err := db.Connect(ctx, cfg.Database.URL)
	switch {
	case errors.Is(err, db.ErrMissingURL):
		logger.Warn("no database configured, data is kept in memory")
		users = useMemoryRepos()
	case err != nil:
		return fmt.Errorf("could not connect to database: %w", err)
	default:
		defer database.Close()
		if err := db.Migrate(ctx, database); err != nil {
			return fmt.Errorf("could not migrate database: %w", err)
		}
		users = usePostgresRepos(database)
		logger.Info("connected to database")
	}

	redisService, err := redissvc.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	switch {
	case err != nil:
		logger.Warn("could not connect to Redis, using in-process cache", zap.Error(err))
		handlers.SetCache(cache.NewMemory(cfg.Cache.TTL))
	case redisService == nil:
		handlers.SetCache(cache.NewMemory(cfg.Cache.TTL))
	default:
		defer redisService.Close()
		handlers.SetCache(cache.NewRedis(redisService.Rdb(), cfg.Cache.TTL))
		logger.Info("list cache backed by Redis", zap.String("addr", cfg.Redis.Addr))
	}

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	handlers.SetTokenService(tokens)
	if err := seedAdmin(users, cfg.Auth, logger); err != nil {
		return err
	}

	var limiter *rl.Limiter
	if cfg.RateLimit.RPS > 0 {
		limiter = rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Idle)
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: router.NewRouter(router.Options{
			Tokens:         tokens,
			Limiter:        limiter,
			Logger:         logger,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if limiter != nil {
		g.Go(func() error {
			return limiter.Run(gctx, evictInterval)
		})
	}
	return g.Wait()
}

func useMemoryRepos() repo.UserRepository {
	clients := repo.NewInMemoryClientRepository()
	vehicles := repo.NewInMemoryVehicleRepository()
	yards := repo.NewInMemoryYardRepository()
	zones := repo.NewInMemoryZoneRepository()
	boxes := repo.NewInMemoryBoxRepository()
	tracking := repo.NewInMemoryTrackingRepository()

	metrics := repo.NewInMemoryMetricsRepository()
	metrics.SetRepositories(clients, vehicles, yards, zones, boxes, tracking)

	handlers.SetClientRepo(clients)
	handlers.SetVehicleRepo(vehicles)
	handlers.SetYardRepo(yards)
	handlers.SetZoneRepo(zones)
	handlers.SetBoxRepo(boxes)
	handlers.SetTrackingRepo(tracking)
	handlers.SetParkingRepo(repo.NewInMemoryParkingRepository())
	handlers.SetMetricsRepo(metrics)
	users := repo.NewInMemoryUserRepository()
	handlers.SetUserRepo(users)
	return users
}

func usePostgresRepos(database *sql.DB) repo.UserRepository {
	handlers.SetClientRepo(repo.NewPostgresClientRepository(database))
	handlers.SetVehicleRepo(repo.NewPostgresVehicleRepository(database))
	handlers.SetYardRepo(repo.NewPostgresYardRepository(database))
	handlers.SetZoneRepo(repo.NewPostgresZoneRepository(database))
	handlers.SetBoxRepo(repo.NewPostgresBoxRepository(database))
	handlers.SetTrackingRepo(repo.NewPostgresTrackingRepository(database))
	handlers.SetParkingRepo(repo.NewPostgresParkingRepository(database))
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	users := repo.NewPostgresUserRepository(database)
	handlers.SetUserRepo(users)
	return users
}

// seedAdmin creates the configured admin account unless it already exists.
func seedAdmin(users repo.UserRepository, cfg config.Auth, logger *zap.Logger) error {
	if cfg.AdminUser == "" || cfg.AdminPassword == "" {
		return nil
	}
	_, err := users.GetByUsername(cfg.AdminUser)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("could not look up admin user: %w", err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	if _, err := users.CreateUser(models.User{Username: cfg.AdminUser, PasswordHash: hash, Role: "admin"}); err != nil {
		return fmt.Errorf("could not create admin user: %w", err)
	}
	logger.Info("admin user created", zap.String("username", cfg.AdminUser))
	return nil
}
