// Package main Product Catalog API
//
// @title           Product Catalog API
// @version         1.0
// @description     Product catalog with JWT authentication, pagination and search.
//
// @host      localhost:8080
// @BasePath  /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/alshadows/product-catalog/docs"
	"github.com/alshadows/product-catalog/internal/api"
	"github.com/alshadows/product-catalog/internal/api/handler"
	"github.com/alshadows/product-catalog/internal/api/metrics"
	"github.com/alshadows/product-catalog/internal/core/ports"
	"github.com/alshadows/product-catalog/internal/core/service"
	"github.com/alshadows/product-catalog/internal/infrastructure/config"
	mongostore "github.com/alshadows/product-catalog/internal/infrastructure/db/mongo"
	pgstore "github.com/alshadows/product-catalog/internal/infrastructure/db/postgres"
	redisstore "github.com/alshadows/product-catalog/internal/infrastructure/db/redis"
	"github.com/alshadows/product-catalog/internal/pkg/token"
	"github.com/alshadows/product-catalog/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env file is fine; real environments inject variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "product-catalog",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("product-catalog stopped with error")
	}
	log.Info().Msg("product-catalog stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()
	log.Info().Str("driver", cfg.StoreDriver).Msg("store connected")

	health := map[string]handler.Pinger{"store": handler.PingerFunc(st.ping)}

	var cache service.ProductCache
	if cfg.Cache.Enabled {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, product cache disabled")
		} else {
			defer rdb.Close()
			cache = redisstore.NewProductCache(rdb, cfg.Cache.TTL, metrics.ProductCacheTotal)
			health["redis"] = handler.PingerFunc(func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			})
		}
	}

	tokens := token.NewMaker(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(st.users, tokens, logger.For("auth_service"))
	productService := service.NewProductService(st.products, cache, logger.For("product_service"))

	if cfg.SeedDefaultUsers {
		created, err := authService.EnsureUsers(ctx, service.DefaultSeedUsers)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if created > 0 {
			log.Info().Int("created", created).Msg("default users seeded")
		}
	}

	e := api.NewRouter(api.Dependencies{
		Products: productService,
		Auth:     authService,
		Tokens:   tokens,
		Health:   health,
		Log:      logger.For("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// store bundles the repositories of the selected backend.
type store struct {
	products ports.ProductRepository
	users    ports.UserRepository
	ping     func(ctx context.Context) error
	close    func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgstore.Connect(ctx, pgstore.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, err
		}
		if err := pgstore.Migrate(pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &store{
			products: pgstore.NewProductRepository(pool),
			users:    pgstore.NewUserRepository(pool),
			ping:     pool.Ping,
			close:    pool.Close,
		}, nil

	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &store{
			products: mongostore.NewProductRepository(db),
			users:    mongostore.NewUserRepository(db),
			ping: func(ctx context.Context) error {
				return mongostore.Ping(ctx, db)
			},
			close: func() {
				_ = client.Disconnect(context.Background())
			},
		}, nil
	}
}
